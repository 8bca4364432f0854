// Package services implements the external API collaborators the
// application consumes: the TMDB catalog, the EmailJS transactional mailer,
// the Gemini catalog assistant and public IPTV playlists.
//
// # Catalog
//
// [TMDBService] maps TMDB list endpoints (trending, popular, now playing,
// upcoming, top rated, search) to []models.Movie. Authentication uses the
// v4 read-access bearer token through an [oauth2] static token source when
// configured, falling back to the v3 api_key query parameter. Requests are
// throttled by a [rate.Limiter] and carry per-request timeouts.
//
// # Mailer
//
// [EmailService] sends the 6-digit verification code through the EmailJS
// REST API. The caller owns code generation and verification; the mailer
// only reports whether delivery was accepted.
//
// # Assistant
//
// [GeminiService] asks the Gemini generateContent endpoint for a
// catalog-aware recommendation, degrading to a canned message upstream on
// failure.
//
// # IPTV
//
// [IPTVService] fetches M3U playlists through a list of CORS proxies with
// per-attempt timeouts before trying the URL directly, and parses #EXTINF
// metadata into []models.Channel.
//
// # Error Handling
//
// Network and API failures degrade to empty results at the call sites;
// helpers never panic on collaborator misbehavior. Typed errors come from
// the shared package ([shared.ErrAPIRequest], [shared.ErrEmailSend]).
package services
