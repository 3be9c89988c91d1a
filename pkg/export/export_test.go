package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Ram", "Ewe", "Notes"},
		Rows: []map[string]string{
			{"Ram": "Bram", "Ewe": "Dolly", "Notes": `He said "hi"`},
			{"Ram": "Rex", "Ewe": "Molly, Jr", "Notes": "line one\nline two"},
			{"Ram": "Zed"},
		},
	}
}

func TestCSVExporterQuotesEveryField(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.SplitN(string(out), "\n", 3)
	assert.Equal(t, "Ram,Ewe,Notes", lines[0])
	assert.Equal(t, `"Bram","Dolly","He said ""hi"""`, lines[1])
	assert.True(t, strings.HasSuffix(string(out), `"Zed","",""`))
}

func TestCSVExporterRoundTrip(t *testing.T) {
	data := sampleDataset()
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(data.Rows)+1)
	assert.Equal(t, `He said "hi"`, records[1][2])
	assert.Equal(t, "Molly, Jr", records[2][1])
	assert.Equal(t, "line one\nline two", records[2][2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Mating Pairs")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterSpansPages(t *testing.T) {
	data := Dataset{Headers: []string{"Tag", "Name"}}
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, map[string]string{"Tag": "UK-" + strings.Repeat("9", i%5+1), "Name": "Ewe"})
	}
	out, err := NewPDFExporter().Render(data, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 3)
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "Sheep")
	require.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"a""b"`, Quote(`a"b`))
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "mating-pairs-2024-03-05.csv", Filename("mating-pairs", "csv", day))
}
