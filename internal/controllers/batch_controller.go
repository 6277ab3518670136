package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/flowbaker/copysmith/internal/services"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/flowbaker/copysmith/pkg/language"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRunID         = "X-Run-ID"
	HeaderRowsSucceeded = "X-Rows-Succeeded"
	HeaderRowsFailed    = "X-Rows-Failed"
	HeaderTablesSkipped = "X-Tables-Skipped"
)

// BatchController exposes batch processing over HTTP
type BatchController struct {
	batchService *services.BatchService
	defaultStyle domain.StyleConfiguration
}

type BatchControllerDependencies struct {
	BatchService *services.BatchService
	DefaultStyle domain.StyleConfiguration
}

func NewBatchController(deps BatchControllerDependencies) *BatchController {
	return &BatchController{
		batchService: deps.BatchService,
		defaultStyle: deps.DefaultStyle,
	}
}

type TableFailureResponse struct {
	Table string `json:"table"`
	Error string `json:"error"`
}

type NothingToDownloadResponse struct {
	Error         string                 `json:"error"`
	RunID         string                 `json:"run_id"`
	TableFailures []TableFailureResponse `json:"table_failures"`
}

type LanguagesResponse struct {
	Selectors []string `json:"selectors"`
	Default   string   `json:"default"`
}

type StyleOptionsResponse struct {
	Default         domain.StyleConfiguration `json:"default"`
	ShortStyles     []domain.ShortStyle       `json:"short_styles"`
	Tones           []string                  `json:"tones"`
	WritingStyles   []string                  `json:"writing_styles"`
	LanguageLevels  []string                  `json:"language_levels"`
	TargetAges      []string                  `json:"target_ages"`
	TargetGenders   []string                  `json:"target_genders"`
	ExpertiseLevels []string                  `json:"expertise_levels"`
	ParagraphStyles []string                  `json:"paragraph_styles"`
	HeadingStyles   []string                  `json:"heading_styles"`
	MinKeywords     int                       `json:"min_keywords"`
	MaxKeywords     int                       `json:"max_keywords"`
}

// CreateBatch processes the uploaded "files" parts and answers with the artifact
func (c *BatchController) CreateBatch(ctx fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "At least one file is required in the files field")
	}

	style, err := c.parseStyle(form.Value["style"])
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	files := make([]services.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			log.Error().Err(err).Str("file", header.Filename).Msg("Failed to read uploaded file")
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Failed to read %s", header.Filename))
		}
		files = append(files, file)
	}

	runID := xid.New().String()

	log.Info().Str("run_id", runID).Int("files", len(files)).Msg("Starting batch from upload")

	result, err := c.batchService.Process(ctx.RequestCtx(), services.ProcessParams{
		RunID: runID,
		Files: files,
		Style: style,
	})
	if errors.Is(err, domain.ErrNothingToDownload) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(NothingToDownloadResponse{
			Error:         err.Error(),
			RunID:         runID,
			TableFailures: tableFailures(result.Outcome.TableFailures),
		})
	}
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("Failed to process batch")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process batch")
	}

	outcome := result.Outcome

	ctx.Set(HeaderRunID, outcome.RunID)
	ctx.Set(HeaderRowsSucceeded, strconv.Itoa(outcome.SucceededRows))
	ctx.Set(HeaderRowsFailed, strconv.Itoa(outcome.FailedRows))
	ctx.Set(HeaderTablesSkipped, strconv.Itoa(len(outcome.TableFailures)))
	ctx.Set(fiber.HeaderContentType, result.Artifact.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Artifact.Name))

	return ctx.Status(fiber.StatusOK).Send(result.Artifact.Data)
}

// ListLanguages returns the accepted language selectors
func (c *BatchController) ListLanguages(ctx fiber.Ctx) error {
	return ctx.JSON(LanguagesResponse{
		Selectors: language.SelectorNames,
		Default:   c.defaultStyle.TargetLanguage,
	})
}

// StyleOptions returns the option lists a configuration form offers
func (c *BatchController) StyleOptions(ctx fiber.Ctx) error {
	return ctx.JSON(StyleOptionsResponse{
		Default:         c.defaultStyle,
		ShortStyles:     domain.ShortStyleOptions,
		Tones:           domain.ToneOptions,
		WritingStyles:   domain.WritingStyleOptions,
		LanguageLevels:  domain.LanguageLevelOptions,
		TargetAges:      domain.TargetAgeOptions,
		TargetGenders:   domain.TargetGenderOptions,
		ExpertiseLevels: domain.ExpertiseLevelOptions,
		ParagraphStyles: domain.ParagraphStyleOptions,
		HeadingStyles:   domain.HeadingStyleOptions,
		MinKeywords:     domain.MinKeywordsPerText,
		MaxKeywords:     domain.MaxKeywordsPerText,
	})
}

// parseStyle lays the optional JSON style field over the server default.
func (c *BatchController) parseStyle(values []string) (domain.StyleConfiguration, error) {
	style := c.defaultStyle

	if len(values) == 0 || values[0] == "" {
		return style, nil
	}

	if err := json.Unmarshal([]byte(values[0]), &style); err != nil {
		return style, fmt.Errorf("invalid style field: %w", err)
	}

	style = style.WithDefaults()

	if err := style.Validate(); err != nil {
		return style, fmt.Errorf("invalid style field: %w", err)
	}

	return style, nil
}

func readUpload(header *multipart.FileHeader) (services.UploadedFile, error) {
	file, err := header.Open()
	if err != nil {
		return services.UploadedFile{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return services.UploadedFile{}, err
	}

	return services.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}

func tableFailures(failures []*domain.TableError) []TableFailureResponse {
	response := make([]TableFailureResponse, 0, len(failures))
	for _, failure := range failures {
		response = append(response, TableFailureResponse{
			Table: failure.Table,
			Error: failure.Err.Error(),
		})
	}
	return response
}
