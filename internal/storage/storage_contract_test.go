package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func sampleRows() []PriceRow {
	return []PriceRow{
		{Grade: "BOPF", Std: "STD2", Price: f64(1250)},
		{Grade: "BOPF", Std: "STD1", Price: f64(1200), Kg10: f64(50)},
		{Grade: "OP", Std: "STD1", Price: f64(1500)},
		{Grade: "PEKOE", Std: "A"},
		{Grade: "pekoe_fine", Std: "B", Bulk: f64(0)},
	}
}

// runContract exercises the behavior every Storage backend must share.
func runContract(t *testing.T, open func(t *testing.T) Storage) {
	t.Run("empty store", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		grades, err := st.ListGrades(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, grades)
		assert.Empty(t, grades)

		rows, err := st.GetByGrade(ctx, "BOPF")
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("replace and query", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		n, err := st.ReplaceAll(ctx, sampleRows())
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		grades, err := st.ListGrades(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"BOPF", "OP", "PEKOE", "pekoe_fine"}, grades)

		grades, err = st.ListGrades(ctx, "bo")
		require.NoError(t, err)
		assert.Equal(t, []string{"BOPF"}, grades)

		grades, err = st.ListGrades(ctx, "OP")
		require.NoError(t, err)
		assert.Equal(t, []string{"BOPF", "OP"}, grades, "substring match, not prefix")

		rows, err := st.GetByGrade(ctx, "BOPF")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "STD1", rows[0].Std)
		assert.Equal(t, "STD2", rows[1].Std)
		require.NotNil(t, rows[0].Kg10)
		assert.Equal(t, 50.0, *rows[0].Kg10)
		assert.Nil(t, rows[0].Bulk)

		rows, err = st.GetByGrade(ctx, "pekoe_fine")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].Bulk, "zero is a quoted price")
		assert.Equal(t, 0.0, *rows[0].Bulk)
	})

	t.Run("grade lookup is exact", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()
		_, err := st.ReplaceAll(ctx, sampleRows())
		require.NoError(t, err)

		rows, err := st.GetByGrade(ctx, "bopf")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()
		_, err := st.ReplaceAll(ctx, sampleRows())
		require.NoError(t, err)

		grades, err := st.ListGrades(ctx, "_")
		require.NoError(t, err)
		assert.Equal(t, []string{"pekoe_fine"}, grades)

		grades, err = st.ListGrades(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, grades)
	})

	t.Run("search folds non-ascii case", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()
		_, err := st.ReplaceAll(ctx, []PriceRow{
			{Grade: "ÉCLAT", Std: "A"},
			{Grade: "Çay", Std: "B"},
			{Grade: "OP", Std: "C"},
		})
		require.NoError(t, err)

		for q, want := range map[string][]string{
			"éc":  {"ÉCLAT"},
			"ÇA":  {"Çay"},
			"çay": {"Çay"},
			"":    {"OP", "Çay", "ÉCLAT"},
		} {
			grades, err := st.ListGrades(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, want, grades, "query %q", q)
		}
	})

	t.Run("replace leaves no residue", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()
		_, err := st.ReplaceAll(ctx, sampleRows())
		require.NoError(t, err)

		n, err := st.ReplaceAll(ctx, []PriceRow{{Grade: "FBOP", Std: "X"}})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		grades, err := st.ListGrades(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"FBOP"}, grades)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()
		n, err := st.ReplaceAll(ctx, []PriceRow{
			{Grade: "OP", Std: "S", Price: f64(1)},
			{Grade: "OP", Std: "S", Price: f64(2)},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		rows, err := st.GetByGrade(ctx, "OP")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 1.0, *rows[0].Price)
		assert.Equal(t, 2.0, *rows[1].Price)

		grades, err := st.ListGrades(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"OP"}, grades)
	})

	t.Run("caller rows are not mutated", func(t *testing.T) {
		st := open(t)
		in := sampleRows()
		_, err := st.ReplaceAll(context.Background(), in)
		require.NoError(t, err)
		for _, r := range in {
			assert.Zero(t, r.ID)
		}
	})
}
