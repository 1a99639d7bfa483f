package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokernow/internal/ingest"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "logs/poker_now_log_abc.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "poker_now_log_abc_mapping.json"), s.Path())

	s.Set("Ada @ x1y2", "Ada")
	s.Set("Bo @ z9", "Bo")
	require.NoError(t, s.Save())

	reopened, err := Open(dir, "logs/poker_now_log_abc.csv")
	require.NoError(t, err)
	assert.Equal(t, "Ada", reopened.Resolve("Ada @ x1y2"))
	assert.Equal(t, "Bo", reopened.Resolve("Bo @ z9"))
}

func TestStoreResolveUnmappedReturnsRaw(t *testing.T) {
	s, err := Open(t.TempDir(), "session.csv")
	require.NoError(t, err)
	assert.Equal(t, "Ghost @ g", s.Resolve("Ghost @ g"))
}

func TestStoreSetIgnoresEmptyDisplay(t *testing.T) {
	s, err := Open(t.TempDir(), "session.csv")
	require.NoError(t, err)
	s.Set("Ada @ a", "   ")
	assert.Equal(t, "Ada @ a", s.Resolve("Ada @ a"))
}

func TestStoreUnmapped(t *testing.T) {
	s, err := Open(t.TempDir(), "session.csv")
	require.NoError(t, err)
	s.Set("Ada @ a", "Ada")

	unmapped := s.Unmapped([]string{"Ada @ a", "Bo @ b", "Cy @ c"})
	assert.Equal(t, []string{"Bo @ b", "Cy @ c"}, unmapped)
}

func TestOpenRejectsCorruptMapping(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_mapping.json"), []byte("{nope"), 0o644))

	_, err := Open(dir, "session.csv")
	assert.Error(t, err)
}

func TestCollectNames(t *testing.T) {
	records := []ingest.Record{
		{Entry: `-- starting hand #1  (id: h1) (dealer: "Ada @ a") --`},
		{Entry: `Player stacks: #1 "Ada @ a" (1000) | #2 "Bo @ b" (900)`},
		{Entry: `"Cy @ c" raises to 30`},
		{Entry: `"Bo @ b" folds`},
		{Entry: `"Ada @ a" collected 45 from pot`},
		{Entry: `The admin updated the table`},
	}

	names := CollectNames(records)
	assert.Equal(t, []string{"Ada @ a", "Bo @ b", "Cy @ c"}, names)
}
