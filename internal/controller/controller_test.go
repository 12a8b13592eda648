package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/serverutils"
	"voice-journal-be/internal/service"
	"voice-journal-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestionService struct {
	gotAsk      *dto.AskQuestionRequest
	gotFilename string
	liveErr     error
}

func (f *fakeQuestionService) Ask(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	f.gotAsk = req
	return &dto.AskQuestionResponse{Question: req.Question, Answer: "answer to " + req.Question, Mode: "examMode"}, nil
}

func (f *fakeQuestionService) AskAudio(ctx context.Context, audio io.Reader, filename string) (*dto.AudioQuestionResponse, error) {
	f.gotFilename = filename
	return &dto.AudioQuestionResponse{Question: "spoken", Answer: "reply"}, nil
}

func (f *fakeQuestionService) LiveChat(ctx context.Context, audio io.Reader, filename, conversationId string) ([]byte, error) {
	f.gotFilename = filename
	if f.liveErr != nil {
		return nil, f.liveErr
	}
	return []byte("RIFF...."), nil
}

type fakeNoteService struct{}

func (fakeNoteService) CreateFromTranscription(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	return &dto.CreateNoteResponse{Id: "n1", Title: "T", Tags: []string{"Science"}}, nil
}

func (fakeNoteService) CreateFromAudio(ctx context.Context, audio io.Reader, filename string) (*dto.CreateNoteResponse, error) {
	return &dto.CreateNoteResponse{Id: "n2"}, nil
}

func (fakeNoteService) Show(ctx context.Context, id string) (*dto.ShowNoteResponse, error) {
	if id != "n1" {
		return nil, service.ErrNoteNotFound
	}
	return &dto.ShowNoteResponse{Id: "n1", Tags: []string{}}, nil
}

func (fakeNoteService) List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error) {
	return []*dto.ShowNoteResponse{}, nil
}

func (fakeNoteService) SemanticSearch(ctx context.Context, query string) ([]*dto.SemanticSearchResponse, error) {
	return []*dto.SemanticSearchResponse{}, nil
}

func (fakeNoteService) ListAll(ctx context.Context) ([]*entity.Note, error) {
	return []*entity.Note{}, nil
}

func (fakeNoteService) SyncIndex(ctx context.Context, index vectorindex.Counter) (int, error) {
	return 0, nil
}

func (fakeNoteService) Reindex(ctx context.Context) (int, error) {
	return 0, nil
}

func newTestApp(questions service.IQuestionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewQuestionController(questions).RegisterRoutes(api, app.Group("/live_chat"))
	NewNoteController(fakeNoteService{}).RegisterRoutes(api)
	return app
}

func multipartAudio(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, "question.webm")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestAskEndpoint(t *testing.T) {
	questions := &fakeQuestionService{}
	app := newTestApp(questions)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"question":"Quiz me on mitosis","conversation_id":"c1"}`, wantStatus: 200},
		{name: "missing question", body: `{"prior_answer":"x"}`, wantStatus: 400},
		{name: "malformed json", body: `{`, wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	assert.Equal(t, "c1", questions.gotAsk.ConversationId)
}

func TestAskEndpointEnvelope(t *testing.T) {
	app := newTestApp(&fakeQuestionService{})

	req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(`{"question":"q"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var result serverutils.BaseResponse[dto.AskQuestionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "answer to q", result.Data.Answer)
}

func TestAskAudioEndpoint(t *testing.T) {
	questions := &fakeQuestionService{}
	app := newTestApp(questions)

	body, contentType := multipartAudio(t, "audio", []byte("webm bytes"))
	req := httptest.NewRequest("POST", "/api/ask_question", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result dto.AudioQuestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, dto.AudioQuestionResponse{Question: "spoken", Answer: "reply"}, result)
	assert.Equal(t, "question.webm", questions.gotFilename)

	body, contentType = multipartAudio(t, "other", []byte("x"))
	req = httptest.NewRequest("POST", "/api/ask_question", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLiveChatEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        []byte
		liveErr     error
		wantStatus  int
		wantType    string
		wantFile    string
	}{
		{name: "webm audio", contentType: "audio/webm;codecs=opus", body: []byte("x"), wantStatus: 200, wantType: "audio/wav", wantFile: "input.webm"},
		{name: "octet stream", contentType: "application/octet-stream", body: []byte("x"), wantStatus: 200, wantType: "audio/wav", wantFile: "input.webm"},
		{name: "wrong content type", contentType: "text/plain", body: []byte("x"), wantStatus: 400},
		{name: "empty body", contentType: "audio/wav", wantStatus: 400},
		{name: "no speech", contentType: "audio/wav", body: []byte("x"), liveErr: service.ErrEmptyQuery, wantStatus: 204, wantFile: "input.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := &fakeQuestionService{liveErr: tt.liveErr}
			app := newTestApp(questions)

			req := httptest.NewRequest("POST", "/live_chat/response", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, resp.Header.Get("Content-Type"))
			}
			assert.Equal(t, tt.wantFile, questions.gotFilename)
		})
	}
}

func TestNoteEndpoints(t *testing.T) {
	app := newTestApp(&fakeQuestionService{})

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "create", method: "POST", target: "/api/notes", body: `{"transcription":"today we covered cells"}`, wantStatus: http.StatusCreated},
		{name: "create without transcription", method: "POST", target: "/api/notes", body: `{}`, wantStatus: 400},
		{name: "show", method: "GET", target: "/api/notes/n1", wantStatus: 200},
		{name: "show missing", method: "GET", target: "/api/notes/zz", wantStatus: 404},
		{name: "search is not an id", method: "GET", target: "/api/notes/search?q=cells", wantStatus: 200},
		{name: "list with bad limit", method: "GET", target: "/api/notes?limit=1000", wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
