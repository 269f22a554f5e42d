// Package importer loads films in bulk from an .xlsx workbook.
//
// Every sheet is read; its first row is a header. Columns are name,
// description, release date (YYYY-MM-DD or an Excel date serial), duration
// in minutes, rating name and a comma-separated list of genre names.
// Rows that fail to parse or to store are reported and skipped.
package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mroshb/filmorate/internal/metrics"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/security"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const MaxFileSize = 10 << 20

const (
	colName = iota
	colDescription
	colReleaseDate
	colDuration
	colRating
	colGenres
	minColumns = colRating + 1
)

type FilmCreator interface {
	CreateFilm(film *models.Film) (*models.Film, error)
}

type ReferenceLookup interface {
	RatingByName(name string) (*models.Rating, error)
	GenreByName(name string) (*models.Genre, error)
}

// RowError describes a skipped row. Row is 1-based as shown in spreadsheet tools.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

type Result struct {
	Imported []models.Film
	Skipped  []RowError
}

type Importer struct {
	films FilmCreator
	refs  ReferenceLookup
}

func New(films FilmCreator, refs ReferenceLookup) *Importer {
	return &Importer{films: films, refs: refs}
}

func (im *Importer) ImportFile(path string) (*Result, error) {
	if !security.ValidateFileType(path, []string{".xlsx"}) {
		return nil, errors.Newf(errors.ErrCodeValidation, "%s is not an .xlsx workbook", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound, "failed to open workbook")
	}
	if !security.ValidateFileSize(info.Size(), MaxFileSize) {
		return nil, errors.Newf(errors.ErrCodeValidation, "workbook size %d is outside 1..%d bytes", info.Size(), MaxFileSize)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "failed to read workbook")
	}
	defer f.Close()

	return im.importWorkbook(f)
}

func (im *Importer) Import(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "failed to read workbook")
	}
	defer f.Close()

	return im.importWorkbook(f)
}

func (im *Importer) importWorkbook(f *excelize.File) (*Result, error) {
	result := &Result{Imported: []models.Film{}}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read sheet "+sheet)
		}
		logger.Info("Importing sheet", "sheet", sheet, "rows", len(rows))

		for i, row := range rows {
			if i == 0 || blank(row) {
				continue
			}

			film, err := im.importRow(row)
			metrics.RecordImportedRow(err == nil)
			if err != nil {
				rowErr := RowError{Sheet: sheet, Row: i + 1, Err: err}
				logger.Warn("Skipping row", "sheet", sheet, "row", i+1, "error", err)
				result.Skipped = append(result.Skipped, rowErr)
				continue
			}
			result.Imported = append(result.Imported, *film)
		}
	}

	logger.Info("Import finished", "imported", len(result.Imported), "skipped", len(result.Skipped))
	return result, nil
}

func (im *Importer) importRow(row []string) (*models.Film, error) {
	film, ratingName, genreNames, err := parseRow(row)
	if err != nil {
		return nil, err
	}

	rating, err := im.refs.RatingByName(ratingName)
	if err != nil {
		return nil, err
	}
	film.RatingID = rating.ID

	for _, name := range genreNames {
		genre, err := im.refs.GenreByName(name)
		if err != nil {
			return nil, err
		}
		film.Genres = append(film.Genres, *genre)
	}

	return im.films.CreateFilm(film)
}

func parseRow(row []string) (*models.Film, string, []string, error) {
	if len(row) < minColumns {
		return nil, "", nil, errors.Newf(errors.ErrCodeValidation, "expected at least %d columns, got %d", minColumns, len(row))
	}

	releaseDate, err := parseDate(cell(row, colReleaseDate))
	if err != nil {
		return nil, "", nil, err
	}

	duration, err := strconv.Atoi(cell(row, colDuration))
	if err != nil {
		return nil, "", nil, errors.Newf(errors.ErrCodeValidation, "duration %q is not a whole number", cell(row, colDuration))
	}

	film := &models.Film{
		Name:        cell(row, colName),
		Description: cell(row, colDescription),
		ReleaseDate: releaseDate,
		Duration:    duration,
	}

	var genres []string
	for _, name := range strings.Split(cell(row, colGenres), ",") {
		if name = strings.TrimSpace(name); name != "" {
			genres = append(genres, name)
		}
	}

	return film, cell(row, colRating), genres, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf(errors.ErrCodeValidation, "release date %q is not YYYY-MM-DD", value)
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
