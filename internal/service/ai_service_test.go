package service

import (
	"exam_prep_backend/internal/config"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCompletionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply)
	}))
}

func TestAIChatAgainstCompatibleEndpoint(t *testing.T) {
	srv := fakeCompletionServer(t, "keep practicing mechanics")
	defer srv.Close()

	svc := NewAIService(config.AIConfig{
		Enabled: true,
		BaseURL: srv.URL + "/v1",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	require.True(t, svc.Enabled())

	reply, err := svc.Chat("coach", "two weak topics, trend declining")
	require.NoError(t, err)
	assert.Equal(t, "keep practicing mechanics", reply)
}

func TestAIUpdateConfigSwapsProvider(t *testing.T) {
	srv := fakeCompletionServer(t, "good progress")
	defer srv.Close()

	svc := NewAIService(config.AIConfig{})
	assert.False(t, svc.Enabled())

	svc.UpdateConfig(config.AIConfig{
		Enabled: true,
		BaseURL: srv.URL + "/v1",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	require.True(t, svc.Enabled())

	reply, err := svc.StudyAdvice("average mastery 72")
	require.NoError(t, err)
	assert.Equal(t, "good progress", reply)
}

func TestAIUpdateConfigConcurrentWithReads(t *testing.T) {
	svc := NewAIService(config.AIConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				svc.UpdateConfig(config.AIConfig{Enabled: j%2 == 0, APIKey: "k"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				svc.Enabled()
			}
		}()
	}
	wg.Wait()

	svc.UpdateConfig(config.AIConfig{Enabled: true, APIKey: "k"})
	assert.True(t, svc.Enabled())
}
