package sheets

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReproducesInput(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{HasHeaderRow: true})
	records, err := s.NewReader(strings.NewReader(lovelaceTuring)).ReadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, w.Flush())

	assert.Equal(t, lovelaceTuring, buf.String())
}

// collectingRows records every line handed to it.
type collectingRows struct {
	lines   [][]string
	flushed int
	fail    error
}

func (c *collectingRows) Write(fields []string) error {
	if c.fail != nil {
		return c.fail
	}
	c.lines = append(c.lines, fields)
	return nil
}

func (c *collectingRows) Flush() error {
	c.flushed++
	return nil
}

func TestWriterHeaderOnce(t *testing.T) {
	t.Parallel()

	s, err := Define("Person", Config{HasHeaderRow: true},
		Field("full_name", String()),
		Field("date_of_birth", Date("")),
		Field("id", Integer(WithTitle("ID number"))),
		Field("blank", String(WithTitle(""))),
	)
	require.NoError(t, err)

	rows := &collectingRows{}
	w := s.WriterTo(rows)

	a, err := s.New("ada", "1815-12-10", 1, "x")
	require.NoError(t, err)
	b, err := s.NewRecord(nil, map[string]any{"full_name": "alan"})
	require.NoError(t, err)

	require.NoError(t, w.Write(a))
	require.NoError(t, w.Write(b))
	require.NoError(t, w.WriteAll([]*Record{a}))
	require.NoError(t, w.Flush())

	want := [][]string{
		{"Full Name", "Date Of Birth", "Id Number", ""},
		{"ada", "1815-12-10", "1", "x"},
		{"alan", "", "", ""},
		{"ada", "1815-12-10", "1", "x"},
	}
	if diff := cmp.Diff(want, rows.lines); diff != "" {
		t.Fatalf("written lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, rows.flushed)
}

func TestWriterWithoutHeader(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{})
	rec, err := s.New("Ada Lovelace", "10.12.1815", 36)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Flush())
	assert.Equal(t, "Ada Lovelace,10.12.1815,36\n", buf.String())
}

func TestWriterNoRecordsNoHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := exampleSchema(t, Config{HasHeaderRow: true}).NewWriter(&buf)
	require.NoError(t, w.WriteAll(nil))
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())
}

func TestWriterDialectSettings(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{Delimiter: ';', LineTerminator: CRLF, AlwaysQuote: true})
	rec, err := s.New("Lovelace; Ada", "10.12.1815", 36)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Flush())
	assert.Equal(t, "\"Lovelace; Ada\";\"10.12.1815\";\"36\"\r\n", buf.String())
}

func TestWriterErrors(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{})

	t.Run("nilRecord", func(t *testing.T) {
		t.Parallel()

		w := s.WriterTo(&collectingRows{})
		assert.ErrorIs(t, w.Write(nil), ErrNilRecord)
	})

	t.Run("stickyTokenizerError", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk full")
		w := s.WriterTo(&collectingRows{fail: boom})
		rec, err := s.New("X")
		require.NoError(t, err)

		require.ErrorIs(t, w.Write(rec), boom)
		require.ErrorIs(t, w.Write(rec), boom)
		assert.ErrorIs(t, w.Flush(), boom)
		assert.ErrorIs(t, w.Error(), boom)
	})
}

func TestWriterToEncodingCSV(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{HasHeaderRow: true})
	records, err := s.NewReader(strings.NewReader(lovelaceTuring)).ReadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.WriterTo(stdcsv.NewWriter(&buf))
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, w.Flush())
	assert.Equal(t, lovelaceTuring, buf.String())
}

func TestRoundTripLaw(t *testing.T) {
	t.Parallel()

	s, err := Define("Ledger", Config{HasHeaderRow: true},
		Field("entry", Integer()),
		Field("booked_on", Date("%Y/%m/%d")),
		Field("memo", String()),
		Field("amount", Decimal()),
		Field("rate", Float()),
	)
	require.NoError(t, err)

	const input = "Entry,Booked On,Memo,Amount,Rate\n" +
		"1,2024/01/31,\"rent, January\",-1200.00,0.5\n" +
		"2,2024/02/01,\"says \"\"hi\"\"\",0.10,1e-3\n" +
		"3,2024/02/29,\"two\nlines\",12345678901234567890.5,-7\n" +
		"4,,,,\n" +
		"5,,note,,\n"

	first, err := s.NewReader(strings.NewReader(input)).ReadAll()
	require.NoError(t, err)
	require.Len(t, first, 5)

	sparse, err := s.NewRecord(nil, map[string]any{"memo": "only a memo"})
	require.NoError(t, err)
	first = append(first, sparse)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.WriteAll(first))
	require.NoError(t, w.Flush())

	second, err := s.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "record %d: %v != %v", i, first[i], second[i])
	}
}

func TestWriterAbsentValuesReadBack(t *testing.T) {
	t.Parallel()

	s := exampleSchema(t, Config{HasHeaderRow: true})
	rec, err := s.NewRecord(nil, map[string]any{"name": "X"})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Flush())
	assert.Equal(t, "Name,Birthday,Age\nX,,\n", buf.String())

	got, err := s.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, rec.Equal(got[0]))
	assert.False(t, got[0].IsSet("birthday"))
	assert.False(t, got[0].IsSet("age"))
}

func TestWriterSingleColumnRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := Define("Counts", Config{}, Field("n", Integer()))
	require.NoError(t, err)

	one, err := s.New(1)
	require.NoError(t, err)
	none, err := s.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := s.NewWriter(&buf)
	require.NoError(t, w.WriteAll([]*Record{one, none, one}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "1\n\"\"\n1\n", buf.String())

	got, err := s.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, none.Equal(got[1]))
}

func TestWriterHeaderTitleCasing(t *testing.T) {
	t.Parallel()

	s, err := Define("Casing", Config{HasHeaderRow: true},
		Field("o'neil_code", String()),
		Field("x", String(WithTitle("MIXED case"))),
	)
	require.NoError(t, err)
	rec, err := s.New("a", "b")
	require.NoError(t, err)

	rows := &collectingRows{}
	require.NoError(t, s.WriterTo(rows).Write(rec))

	// Apostrophes stay inside a word, unlike Python's str.title().
	assert.Equal(t, []string{"O'neil Code", "Mixed Case"}, rows.lines[0])
}
