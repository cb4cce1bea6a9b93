package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	input := "# Experience\r\n\r\n\r\n\r\n- Built   APIs  \r\n-   Ran    deployments\r\n\r\nRegular   line   with   spaces"
	got := CleanText(input)

	assert.Equal(t, "# Experience\n\n- Built   APIs\n-   Ran    deployments\n\nRegular line with spaces", got)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\n\r\n\r\nSkills: Go, SQL"), 0o644))

	text, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSkills: Go, SQL", text)
}

func TestReadDocument_RejectsUnsupportedFormat(t *testing.T) {
	_, err := ReadDocument("resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document format")
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

const postingHTML = `<html>
<head><title>Job</title><script>track();</script></head>
<body>
  <nav>Home | Jobs | About</nav>
  <div class="job-description">
    <h1>Backend Engineer</h1>
    <p>We need   strong Go and PostgreSQL experience.</p>
  </div>
  <footer>Copyright</footer>
</body>
</html>`

func TestExtractPostingText_UsesPostingContainer(t *testing.T) {
	text, err := ExtractPostingText(postingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "strong Go and PostgreSQL experience")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "track()")
}

func TestExtractPostingText_FallsBackToBody(t *testing.T) {
	text, err := ExtractPostingText("<html><body><p>Plain posting text</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text", text)
}

func TestFetchJobPosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "InterviewCoach")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	text, err := f.FetchJobPosting(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Engineer")
}

func TestFetchJobPosting_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	_, err := f.FetchJobPosting(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchJobPosting_InvalidURL(t *testing.T) {
	f := NewFetcher(0)
	_, err := f.FetchJobPosting(context.Background(), "not-a-url")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}
