package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	convert "github.com/aerissecure/rubricconvert"
	"github.com/aerissecure/rubricconvert/rbc"
	"github.com/aerissecure/rubricconvert/xlsx"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := New(Name("test"), ID("test-id"), Port(8080), WorkDir(t.TempDir()))
	require.NoError(t, err)
	return s
}

func exampleWorkbook(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, convert.WriteExampleWorkbook(&buf))
	return buf.Bytes()
}

// upload builds a multipart request carrying file and the given fields.
func upload(t *testing.T, target, filename string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPing(t *testing.T) {
	s := newTestService(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConvertToRBC(t *testing.T) {
	s := newTestService(t)
	rec := httptest.NewRecorder()
	req := upload(t, "/convert", "Essay_Rubric.xlsx", exampleWorkbook(t), nil)
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Essay_Rubric.rbc")
	assert.Empty(t, rec.Header().Get(WarningsHeader))

	doc, err := rbc.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Essay Rubric", doc.Name())
	assert.Len(t, doc.RubricCriterion, 2)
}

func TestConvertToIMSWithWarnings(t *testing.T) {
	s := newTestService(t)

	rec := httptest.NewRecorder()
	req := upload(t, "/convert", "r.xlsx", exampleWorkbook(t), map[string]string{
		"format":     "ims",
		"rubricName": "Named",
	})
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Named", gjson.GetBytes(rec.Body.Bytes(), "Title").String())

	rec = httptest.NewRecorder()
	req = upload(t, "/convert", "r.xlsx", exampleWorkbook(t), map[string]string{
		"rubricName": "A rubric name of well over thirty characters",
	})
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(WarningsHeader), "Rubric name truncated")
}

func TestConvertJSONToWorkbook(t *testing.T) {
	s := newTestService(t)
	data, err := rbc.Encode(rbc.Example())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, upload(t, "/convert", "example.rbc", data, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	g, err := xlsx.ReadGrid(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, g.Rows, 2)
}

func TestConvertBadRequests(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		filename string
		file     []byte
		fields   map[string]string
	}{
		{"no file", "", nil, nil},
		{"unsupported extension", "notes.txt", []byte("hello"), nil},
		{"bad format", "r.xlsx", exampleWorkbook(t), map[string]string{"format": "csv"}},
		{"not a workbook", "r.xlsx", []byte("not a zip"), nil},
		{"no criteria", "r.json", []byte(`{"CFRubricCriterion": []}`), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, upload(t, "/convert", tt.filename, tt.file, tt.fields))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	// request directories are cleaned up
	entries, err := os.ReadDir(s.workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPreview(t *testing.T) {
	s := newTestService(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, upload(t, "/preview", "example.xlsx", exampleWorkbook(t), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insightful and thorough [5]")
}

func TestExample(t *testing.T) {
	s := newTestService(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/example", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "example_rubric.xlsx")

	g, err := xlsx.ReadGrid(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	assert.Equal(t, convert.ExampleGrid(), g)
}

func TestOptions(t *testing.T) {
	_, err := New(Host(""), WorkDir(t.TempDir()))
	assert.Error(t, err)

	_, err = New(Port(-1), WorkDir(t.TempDir()))
	assert.Error(t, err)

	s, err := New(WorkDir(t.TempDir()))
	require.NoError(t, err)
	assert.NotEmpty(t, s.serviceName)
	assert.NotEmpty(t, s.serviceID)
	assert.NotZero(t, s.servicePort)
}
