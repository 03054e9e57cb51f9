package yamlfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idleodyssey/internal/domain/idle"
)

func TestLoad_ShippedCatalogMatchesDefault(t *testing.T) {
	cat, err := Load(filepath.Join("..", "..", "..", "..", "configs", "catalog.yaml"))
	require.NoError(t, err)
	assert.Equal(t, idle.DefaultCatalog(), cat)
}

func TestWrite_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, Write(path, idle.DefaultCatalog()))

	got, err := Source{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, idle.DefaultCatalog(), got)
}

const minimal = `
resources:
  - {id: gold, name: Gold, discovered_by_default: true}
  - {id: xp, name: Experience, discovered_by_default: true}
  - {id: reed, name: Reed, discovered_by_default: true}
nodes:
  - id: marsh.reed
    kind: standard
    category: woodcutting
    label: Reed Bed
    action_verb: Cut
    duration_seconds: 1.5
    xp: 2
    resource_id: reed
    reward_amount: 1
base_stats:
  prod.reed.amount: 2
sell_prices: {reed: 3}
`

func TestParse_Minimal(t *testing.T) {
	cat, err := Parse([]byte(minimal))
	require.NoError(t, err)
	require.Len(t, cat.Nodes, 1)

	node, ok := cat.Nodes[0].(idle.StandardNode)
	require.True(t, ok)
	assert.Equal(t, idle.NodeDuration(1.5), node.Duration)
	assert.Equal(t, 2.0, cat.BaseStats[idle.AmountStat("reed")])

	e, err := idle.New(cat)
	require.NoError(t, err)
	_, reward := e.CycleYield(node)
	assert.Equal(t, 3.0, reward)
}

func TestParse_SchemaRejections(t *testing.T) {
	cases := map[string]string{
		"empty document":  ``,
		"missing nodes":   "resources:\n  - {id: gold, name: Gold}\n",
		"unknown field":   strings.Replace(minimal, "xp: 2", "xp: 2\n    colour: green", 1),
		"zero duration":   strings.Replace(minimal, "duration_seconds: 1.5", "duration_seconds: 0", 1),
		"bad kind":        strings.Replace(minimal, "kind: standard", "kind: magic", 1),
		"bad category":    strings.Replace(minimal, "category: woodcutting", "category: alchemy", 1),
		"standard no res": strings.Replace(minimal, "    resource_id: reed\n", "", 1),
		"negative price":  strings.Replace(minimal, "{reed: 3}", "{reed: -3}", 1),
		"not yaml":        "resources: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestParse_ReferentialErrorsComeFromCatalog(t *testing.T) {
	doc := strings.Replace(minimal, "resource_id: reed", "resource_id: reeds", 1)
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, idle.ErrInvalidCatalog))
	assert.Contains(t, err.Error(), `did you mean "reed"`)
}

func TestParse_BadStatKey(t *testing.T) {
	doc := strings.Replace(minimal, "prod.reed.amount: 2", "prod.reed.colour: 2", 1)
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, idle.ErrUnknownStat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
