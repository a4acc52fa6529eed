package jsonsample

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lizandraferrari/machine-learning/feature"
)

var (
	age     = feature.NewNumericFeature("Age at enrollment")
	grade   = feature.NewNumericFeature("Admission grade")
	course  = feature.NewCategoricalFeature("Course")
	debtor  = feature.NewCategoricalFeature("Debtor")
	nation  = feature.NewCategoricalFeature("Nacionality")
	records = []feature.Feature{age, grade, course, debtor, nation}
)

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(`{
		"Age at enrollment": 20,
		"Admission grade": "127.3",
		"Course": 9238,
		"Debtor": false,
		"Nacionality": null,
		"Unknown": [1, 2]
	}`), records)
	require.NoError(t, err)
	assert.Equal(t, feature.Number(20), s.ValueFor(age))
	assert.Equal(t, feature.Number(127.3), s.ValueFor(grade))
	assert.Equal(t, feature.Token("9238"), s.ValueFor(course))
	assert.Equal(t, feature.Token("false"), s.ValueFor(debtor))
	assert.False(t, s.ValueFor(nation).Defined())
}

func TestReadKeepsNumberText(t *testing.T) {
	s, err := Decode([]byte(`{"Course": 12345678901234567890, "Admission grade": "?"}`), records)
	require.NoError(t, err)
	assert.Equal(t, feature.Token("12345678901234567890"), s.ValueFor(course))
	assert.False(t, s.ValueFor(grade).Defined())
	assert.False(t, s.ValueFor(age).Defined())
}

func TestReadErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not an object":       `[1, 2]`,
		"malformed":           `{"Course": `,
		"word for a number":   `{"Age at enrollment": "twenty"}`,
		"boolean for number":  `{"Age at enrollment": true}`,
		"object for a number": `{"Age at enrollment": {"years": 20}}`,
	} {
		_, err := Decode([]byte(doc), records)
		assert.Error(t, err, name)
	}
}

func TestReadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "jsonsample")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "record.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"Age at enrollment": 19.5}`), 0644))

	s, err := ReadFile(path, records)
	require.NoError(t, err)
	assert.Equal(t, feature.Number(19.5), s.ValueFor(age))

	_, err = ReadFile(filepath.Join(dir, "missing.json"), records)
	assert.Error(t, err)
}
