// Package models contains the plain data types shared across the
// application: catalog movies and sections, persisted user records, live
// channels and assistant messages.
//
// Types here carry no behavior beyond validation; persistence lives in
// internal/store and external API mapping in internal/services.
package models
