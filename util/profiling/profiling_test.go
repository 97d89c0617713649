package profiling

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidatePort(t *testing.T) {
	for _, port := range []string{"1024", "6060", "65535"} {
		if err := ValidatePort(port); err != nil {
			t.Errorf("port %s was rejected: %s", port, err)
		}
	}
	for _, port := range []string{"", "80", "1023", "65536", "port"} {
		if err := ValidatePort(port); err == nil {
			t.Errorf("port %q was accepted", port)
		}
	}
}

func TestHandlerRedirectsToIndex(t *testing.T) {
	recorder := httptest.NewRecorder()
	NewHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status %d", recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/debug/pprof/" {
		t.Errorf("unexpected redirect to %s", location)
	}

	recorder = httptest.NewRecorder()
	NewHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("unexpected index status %d", recorder.Code)
	}
}
