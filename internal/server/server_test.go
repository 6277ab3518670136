package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowbaker/copysmith/internal/controllers"
	"github.com/flowbaker/copysmith/internal/services"
	"github.com/flowbaker/copysmith/pkg/aggregate"
	"github.com/flowbaker/copysmith/pkg/batch"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/flowbaker/copysmith/pkg/language"
	"github.com/flowbaker/copysmith/pkg/prompt"
	"github.com/flowbaker/copysmith/pkg/tables"
	"github.com/flowbaker/copysmith/pkg/validation"
	"github.com/gofiber/fiber/v3"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	requests []domain.GenerationRequest
}

func (g *stubGenerator) Submit(_ context.Context, req domain.GenerationRequest) (string, error) {
	g.requests = append(g.requests, req)

	if req.MaxTokens == domain.ShortMaxTokens {
		return "<p>✨ Douce lumière<br>🔋 Longue autonomie<br>🛋️ Design épuré<br>🎁 Idée cadeau</p>", nil
	}
	return "<h2>One</h2><p>First.</p><h2>Two</h2><p>Second.</p>", nil
}

func newTestApp(t *testing.T, gen *stubGenerator, token string) *fiber.App {
	t.Helper()

	registry := tables.NewDefaultRegistry()
	orchestrator := batch.NewOrchestrator(batch.OrchestratorDependencies{
		Resolver:  language.NewResolver(language.ResolverOptions{}),
		Builder:   prompt.NewBuilder(),
		Generator: gen,
		Validator: validation.NewValidator(),
		Pacer:     batch.PacerFunc(func(ctx context.Context, _ int) error { return ctx.Err() }),
	})

	service := services.NewBatchService(services.BatchServiceDependencies{
		Decoder:  registry,
		Runner:   aggregate.NewAggregator(aggregate.AggregatorDependencies{Runner: orchestrator}),
		Packager: aggregate.NewPackager(registry),
	})

	return NewHTTPServer(HTTPServerDependencies{
		BatchController: controllers.NewBatchController(controllers.BatchControllerDependencies{
			BatchService: service,
			DefaultStyle: domain.DefaultStyle(),
		}),
		APIToken: token,
	})
}

type upload struct {
	name    string
	content string
}

func multipartRequest(t *testing.T, uploads []upload, style string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, u := range uploads {
		part, err := writer.CreateFormFile("files", u.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(u.content))
		require.NoError(t, err)
	}

	if style != "" {
		require.NoError(t, writer.WriteField("style", style))
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/batches", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())

	return req
}

func testConfig() fiber.TestConfig {
	return fiber.TestConfig{Timeout: 10 * time.Second}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "secret")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "copysmith", payload["service"])
}

func TestCreateBatch_SingleFile(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(t, gen, "")

	req := multipartRequest(t, []upload{
		{name: "catalog.csv", content: "Name,Price\nLampe de chevet,12\n"},
	}, `{"target_language":"French","short_style":"emoji-benefits","temperature":0}`)

	resp, err := app.Test(req, testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="processed_catalog.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, "1", resp.Header.Get(controllers.HeaderRowsSucceeded))
	assert.NotEmpty(t, resp.Header.Get(controllers.HeaderRunID))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Name,Price,Short description,Description\n")
	assert.Contains(t, string(body), "<p>✨ Douce lumière<br>🔋 Longue autonomie<br>🛋️ Design épuré<br>🎁 Idée cadeau</p>")

	require.Len(t, gen.requests, 2)
	assert.Equal(t, 0.0, gen.requests[0].Temperature)
	assert.Contains(t, gen.requests[0].Prompt, "FRENCH")
}

func TestCreateBatch_SeveralFilesAreZipped(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "")

	req := multipartRequest(t, []upload{
		{name: "a.csv", content: "Name\nLamp\n"},
		{name: "b.tsv", content: "Name\tSKU\nChair\tC-1\n"},
	}, "")

	resp, err := app.Test(req, testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "processed_a.csv", reader.File[0].Name)
	assert.Equal(t, "processed_b.tsv", reader.File[1].Name)
}

func TestCreateBatch_NothingToDownload(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(t, gen, "")

	req := multipartRequest(t, []upload{
		{name: "catalog.csv", content: "Title,Price\nLamp,12\n"},
	}, "")

	resp, err := app.Test(req, testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload controllers.NothingToDownloadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "nothing to download", payload.Error)
	require.Len(t, payload.TableFailures, 1)
	assert.Equal(t, "catalog.csv", payload.TableFailures[0].Table)
	assert.Empty(t, gen.requests)
}

func TestCreateBatch_BadRequests(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "")

	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{
			name: "no files",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, nil, "")
			},
		},
		{
			name: "invalid style json",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, []upload{{name: "a.csv", content: "Name\nLamp\n"}}, "{")
			},
		},
		{
			name: "temperature out of range",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, []upload{{name: "a.csv", content: "Name\nLamp\n"}}, `{"temperature":1.5}`)
			},
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/batches", bytes.NewBufferString("{}"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req(t), testConfig())
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAPIToken(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "secret")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer secret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/languages", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req, testConfig())
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestListLanguages(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/languages", nil), testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload controllers.LanguagesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, language.SelectorNames, payload.Selectors)
	assert.Equal(t, domain.AutoDetectLanguage, payload.Default)
}

func TestStyleOptions(t *testing.T) {
	app := newTestApp(t, &stubGenerator{}, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/style-options", nil), testConfig())
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload controllers.StyleOptionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, domain.ToneOptions, payload.Tones)
	assert.Equal(t, 5, payload.MaxKeywords)
	assert.Equal(t, domain.DefaultStyle(), payload.Default)
}
