package brands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/internal/appcontext"
	"github.com/agentstation/shelfsync/pkg/catalogs"
)

func execute(t *testing.T, app appcontext.Interface, args ...string) string {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestBrandsList(t *testing.T) {
	out := execute(t, &appcontext.Mock{})
	assert.Contains(t, out, "New Balance")
	assert.Contains(t, out, "3, 10139, 494, 1025980")
}

func TestBrandsListJSON(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}
	var brands []catalogs.Brand
	require.NoError(t, json.Unmarshal([]byte(execute(t, app)), &brands))
	assert.Equal(t, catalogs.DefaultBrands(), brands)
}

func TestBrandsCheck(t *testing.T) {
	app := &appcontext.Mock{
		OutputFormatFunc: func() string { return "json" },
		BrandsFunc: func() []catalogs.Brand {
			return []catalogs.Brand{{Name: "Adidas", IDs: []int64{3}}, {Name: "Yeezy", IDs: []int64{1152}}}
		},
	}

	tests := []struct {
		name     string
		args     []string
		brand    string
		excluded []string
	}{
		{
			name:     "title keyword wins over alias",
			args:     []string{"--raw", "adidas originals", "--title", "adidas Yeezy Boost 350"},
			brand:    "YEEZY",
			excluded: []string{"Adidas"},
		},
		{
			name:  "alias",
			args:  []string{"--raw", "NB", "--title", "New Balance 550"},
			brand: "new balance",
		},
		{
			name:  "unknown brand passes through",
			args:  []string{"--raw", "Asics"},
			brand: "Asics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var check Check
			require.NoError(t, json.Unmarshal([]byte(execute(t, app, tt.args...)), &check))
			assert.Equal(t, tt.brand, check.Brand)
			assert.Equal(t, tt.excluded, check.ExcludedFrom)
		})
	}
}
