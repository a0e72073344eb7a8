package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNameRows yields single-column string rows and can end the
// iteration with a pending error, the way a dropped connection does.
type fakeNameRows struct {
	names   []string
	idx     int
	iterErr error
	closed  bool
}

func (r *fakeNameRows) Close() { r.closed = true }

func (r *fakeNameRows) Err() error {
	if r.idx >= len(r.names) {
		return r.iterErr
	}
	return nil
}

func (r *fakeNameRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeNameRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *fakeNameRows) Next() bool { return r.idx < len(r.names) }

func (r *fakeNameRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.names[r.idx]
	r.idx++
	return nil
}

func (r *fakeNameRows) Values() ([]any, error) { return nil, nil }
func (r *fakeNameRows) RawValues() [][]byte    { return nil }
func (r *fakeNameRows) Conn() *pgx.Conn        { return nil }

func TestScanNamesCollectsAllRows(t *testing.T) {
	rows := &fakeNameRows{names: []string{"Development", "Design"}}

	names, err := scanNames(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"Development", "Design"}, names)
	assert.True(t, rows.closed)
}

func TestScanNamesSurfacesIterationError(t *testing.T) {
	iterErr := errors.New("connection reset")
	rows := &fakeNameRows{names: []string{"Development"}, iterErr: iterErr}

	_, err := scanNames(rows)

	require.Error(t, err)
	assert.ErrorIs(t, err, iterErr)
	assert.True(t, rows.closed)
}
