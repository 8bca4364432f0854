// package formatter provides functions to export favorites and the user
// ledger to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
)

// FavoritesToCSV converts a favorites list to CSV format with columns: ID, Title, Year, Rating, Category
func FavoritesToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Category"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			movie.ID,
			movie.Title,
			strconv.Itoa(movie.Year),
			strconv.FormatFloat(movie.Rating, 'f', 1, 64),
			movie.Category,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FavoritesToMarkdown converts a favorites list to Markdown format with optional cover image
func FavoritesToMarkdown(movies []models.Movie, ownerName, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Minha Lista\n\n")

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if ownerName != "" {
		buf.WriteString(fmt.Sprintf("**Assinante**: %s\n", ownerName))
	}
	buf.WriteString(fmt.Sprintf("**Títulos**: %d\n\n", len(movies)))

	buf.WriteString("## Títulos\n\n")
	for i, movie := range movies {
		yearPart := ""
		if movie.Year > 0 {
			yearPart = fmt.Sprintf(" (%d)", movie.Year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%.1f]\n", i+1, movie.Title, yearPart, movie.Rating))
	}

	return buf.Bytes(), nil
}

// FavoritesToText converts a favorites list to plain text format
func FavoritesToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Minha Lista: %d títulos\n\n", len(movies)))
	for i, movie := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, movie.Title))
	}

	return buf.Bytes(), nil
}

// UsersToCSV converts the user ledger to CSV format with columns: ID, Email, Name, XP, CreatedAt, LastLogin
func UsersToCSV(users []models.UserRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Email", "Name", "XP", "CreatedAt", "LastLogin"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, user := range users {
		record := []string{
			user.ID,
			user.Email,
			user.Name,
			strconv.Itoa(user.XP),
			user.CreatedAt.Format(time.RFC3339),
			user.LastLogin.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// UsersToJSON generates a JSON backup of the full user ledger
func UsersToJSON(users []models.UserRecord) ([]byte, error) {
	return shared.MarshalJSON(users, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteFavoritesCSV exports the favorites list to {base}_favorites.csv.
//
// Defaults to "telaflix" as the base filename.
func WriteFavoritesCSV(movies []models.Movie, baseFilepath string) (string, error) {
	if baseFilepath == "" {
		baseFilepath = "telaflix"
	}

	csvData, err := FavoritesToCSV(movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	outFile := baseFilepath + "_favorites.csv"
	if err := os.WriteFile(outFile, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return outFile, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports the favorites list to Markdown format in a dedicated directory.
//
// Directory name defaults to "minha-lista". The imageURL parameter is
// optional - if provided, attempts to download the poster as a cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(movies []models.Movie, ownerName, outputDir, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "minha-lista"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := FavoritesToMarkdown(movies, ownerName, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteUsersBackup exports the user ledger to {base}_users.json.
//
// Defaults to "telaflix" as the base filename.
func WriteUsersBackup(users []models.UserRecord, baseFilepath string) (string, error) {
	if baseFilepath == "" {
		baseFilepath = "telaflix"
	}

	jsonData, err := UsersToJSON(users)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	outFile := baseFilepath + "_users.json"
	if err := os.WriteFile(outFile, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return outFile, nil
}
