package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/james-see/etude/pkg/export"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(nil).Router()
}

func perform(t *testing.T, r http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/health", "/api/v1/health"} {
		w := perform(t, r, http.MethodGet, path, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want %d", path, w.Code, http.StatusOK)
		}
		if got := decode(t, w)["status"]; got != "healthy" {
			t.Errorf("GET %s status = %v, want healthy", path, got)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	w := perform(t, newTestRouter(), http.MethodOptions, "/api/v1/health", nil, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestTheoryRoutes(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		field string
		want  interface{}
	}{
		{"key", "/api/v1/key/" + url.PathEscape("C#"), "offset", float64(1)},
		{"key name", "/api/v1/key/Bbb", "accidental", "double flat"},
		{"spell default", "/api/v1/spell/3", "key", "D#"},
		{"spell flat", "/api/v1/spell/3?policy=flat", "key", "Eb"},
		{"pitch", "/api/v1/pitch/" + url.PathEscape("B#3"), "programNumber", float64(48)},
		{"step interval", "/api/v1/pitch/C4/step?interval=m3", "to.pitch", "Eb4"},
		{"step down", "/api/v1/pitch/E4/step?interval=M3&direction=down", "to.pitch", "C4"},
		{"step semitones", "/api/v1/pitch/C4/step?semitones=1&policy=flat", "to.pitch", "Db4"},
		{"between", "/api/v1/interval?from=C4&to=E4", "interval", "M3"},
		{"interval", "/api/v1/interval/M3", "inverse", "m6"},
		{"interval offset", "/api/v1/interval/P8", "offset", float64(12)},
		{"signature", "/api/v1/keysignature/Dmaj", "count", float64(2)},
		{"signature relative", "/api/v1/keysignature/Dmaj", "relative", "Bmin"},
		{"from accidentals", "/api/v1/keysignature?accidental=sharp&count=2&mode=maj", "signature", "Dmaj"},
		{"from flats", "/api/v1/keysignature?accidental=b&count=3&mode=min", "signature", "Cmin"},
		{"chord", "/api/v1/chord/" + url.PathEscape("[C4,E4,G4]"), "lowest", "C4"},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, r, http.MethodGet, tt.path, nil, "")
			if w.Code != http.StatusOK {
				t.Fatalf("GET %s = %d: %s", tt.path, w.Code, w.Body.String())
			}
			var got interface{} = decode(t, w)
			for _, part := range strings.Split(tt.field, ".") {
				got = got.(map[string]interface{})[part]
			}
			if got != tt.want {
				t.Errorf("GET %s %s = %v, want %v", tt.path, tt.field, got, tt.want)
			}
		})
	}
}

func TestScaleRoute(t *testing.T) {
	w := perform(t, newTestRouter(), http.MethodGet, "/api/v1/scale/Cmmin?octave=5&descending=true", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET scale = %d: %s", w.Code, w.Body.String())
	}
	pitches := decode(t, w)["pitches"].([]interface{})
	want := []string{"C5", "Bb4", "Ab4", "G4", "F4", "Eb4", "D4", "C4"}
	if len(pitches) != len(want) {
		t.Fatalf("pitches = %v, want %v", pitches, want)
	}
	for i := range want {
		if pitches[i] != want[i] {
			t.Errorf("pitches[%d] = %v, want %s", i, pitches[i], want[i])
		}
	}
}

func TestBadRequests(t *testing.T) {
	paths := []string{
		"/api/v1/key/H",
		"/api/v1/spell/12",
		"/api/v1/spell/x",
		"/api/v1/spell/1?policy=weird",
		"/api/v1/pitch/C-1",
		"/api/v1/pitch/C4/step",
		"/api/v1/pitch/C4/step?interval=P3",
		"/api/v1/interval?from=E4&to=C4",
		"/api/v1/interval/M4",
		"/api/v1/keysignature/Cfoo",
		"/api/v1/keysignature?accidental=sharp&count=9",
		"/api/v1/scale/Cmaj?octave=x",
		"/api/v1/chord/C4",
	}
	r := newTestRouter()
	for _, path := range paths {
		w := perform(t, r, http.MethodGet, path, nil, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want %d", path, w.Code, http.StatusBadRequest)
			continue
		}
		if _, ok := decode(t, w)["error"]; !ok {
			t.Errorf("GET %s has no error field", path)
		}
	}
}

func TestBuildChordRoute(t *testing.T) {
	r := newTestRouter()

	body := []byte(`{"root":"D4","qualities":["min"],"intervals":["m7"],"inversion":"first"}`)
	w := perform(t, r, http.MethodPost, "/api/v1/chord", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("POST chord = %d: %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["chord"]; got != "[F4,A4,C5,D5]" {
		t.Errorf("chord = %v, want [F4,A4,C5,D5]", got)
	}

	for _, bad := range []string{`{}`, `{"root":"C4","qualities":["sus9"]}`, `{"root":"C4","inversion":"third"}`} {
		w := perform(t, r, http.MethodPost, "/api/v1/chord", []byte(bad), "application/json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST chord %s = %d, want %d", bad, w.Code, http.StatusBadRequest)
		}
	}
}

func TestExportRoute(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		format      string
		body        string
		contentType string
		prefix      string
	}{
		{"midi", `{"chord":"[C4,E4,G4]"}`, "audio/midi", "MThd"},
		{"text", `{"signature":"Dmaj","steps":2}`, "text/plain; charset=utf-8", "# name: Dmaj"},
		{"ly", `{"build":{"root":"C4","qualities":["maj"]}}`, "text/x-lilypond; charset=utf-8", `\version`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := perform(t, r, http.MethodPost, "/api/v1/export/"+tt.format, []byte(tt.body), "application/json")
			if w.Code != http.StatusOK {
				t.Fatalf("POST export = %d: %s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.HasPrefix(w.Body.String(), tt.prefix) {
				t.Errorf("body starts with %q, want %q", w.Body.String()[:min(len(w.Body.String()), 16)], tt.prefix)
			}
		})
	}

	for _, path := range []string{"/api/v1/export/pdf", "/api/v1/export/midi"} {
		w := perform(t, r, http.MethodPost, path, []byte(`{}`), "application/json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s = %d, want %d", path, w.Code, http.StatusBadRequest)
		}
	}
}

func TestConvertRoute(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "progression.txt")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("[C4,E4,G4] 4\n[G3,B3,D4] 4\n"))
	_ = mw.Close()

	w := perform(t, newTestRouter(), http.MethodPost, "/api/v1/convert/midi", body.Bytes(), mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("POST convert = %d: %s", w.Code, w.Body.String())
	}
	if export.DetectFormatFromContent(w.Body.Bytes()) != export.FormatMIDI {
		t.Error("converted body is not MIDI")
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=progression.mid" {
		t.Errorf("Content-Disposition = %q", got)
	}

	w = perform(t, newTestRouter(), http.MethodPost, "/api/v1/convert/midi", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("POST convert without file = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestInfoRoutes(t *testing.T) {
	r := newTestRouter()

	w := perform(t, r, http.MethodGet, "/api/v1/formats", nil, "")
	formats := decode(t, w)["formats"].([]interface{})
	if len(formats) != 3 {
		t.Errorf("formats = %v, want 3 entries", formats)
	}

	w = perform(t, r, http.MethodGet, "/api/v1/modes", nil, "")
	modes := decode(t, w)["modes"].([]interface{})
	if len(modes) != 11 {
		t.Errorf("modes has %d entries, want 11", len(modes))
	}
}
