package export_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/domain/report"
	"github.com/campuslogs/crimelog/infrastructure/export"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/testdb"
)

func TestWriteCSV(t *testing.T) {
	rs := report.NewResultSet([]string{"campus", "incidents"}).
		WithRow("UP", "3").
		WithRow("YK", "1")

	var buf strings.Builder
	require.NoError(t, export.WriteCSV(&buf, rs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "campus,incidents", lines[0])
	assert.Equal(t, "UP,3", lines[1])
	assert.Equal(t, "YK,1", lines[2])
}

func TestWriteCSV_QuotesEmbeddedCommas(t *testing.T) {
	rs := report.NewResultSet([]string{"location"}).
		WithRow("Building A, Room 101")

	var buf strings.Builder
	require.NoError(t, export.WriteCSV(&buf, rs))
	assert.Contains(t, buf.String(), `"Building A, Room 101"`)
}

func TestWriteCSVFile_CreatesParentDirs(t *testing.T) {
	rs := report.NewResultSet([]string{"a"}).WithRow("1")
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, export.WriteCSVFile(path, rs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}

func TestExportTables(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	campuses := persistence.NewCampusStore(db)
	up, err := campuses.FindByCode(ctx, "UP")
	require.NoError(t, err)

	incidents := persistence.NewIncidentStore(db)
	reported := time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC)
	_, _, err = incidents.Insert(ctx, incident.NewIncident("24UP0000009", up.ID(), "Theft", reported))
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := export.ExportTables(ctx, db, dir)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	for _, name := range []string{"campuses", "locations", "natures", "incidents", "offense_types", "incident_offenses"} {
		assert.FileExists(t, filepath.Join(dir, name+".csv"))
	}

	data, err := os.ReadFile(filepath.Join(dir, "incidents.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "24UP0000009")

	// Seeded campuses land in the dump too.
	data, err = os.ReadFile(filepath.Join(dir, "campuses.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 24) // header + 23 campuses
}
