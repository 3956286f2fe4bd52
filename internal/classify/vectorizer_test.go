package classify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitTransform(t *testing.T) {
	vec := NewVectorizer()
	vec.Fit([][]string{{"STARBUCKS", "STORE"}, {"COMCAST"}})

	assert.Equal(t, []string{"STARBUCKS"}, vec.Transform([]string{"STARBUCKS", "1234", "DOWNTOWN"}))
	assert.Nil(t, vec.Transform([]string{"ZZGHQ"}))
}

func TestVectorizer_GobRoundTrip(t *testing.T) {
	vec := NewVectorizer()
	vec.Fit([][]string{{"STARBUCKS"}})
	vec.Classes = []string{"food", "bills"}

	var buf bytes.Buffer
	require.NoError(t, vec.WriteTo(&buf))

	got, err := ReadVectorizer(&buf)
	require.NoError(t, err)
	assert.Equal(t, vec.Vocabulary, got.Vocabulary)
	assert.Equal(t, vec.Classes, got.Classes)
}

func TestReadVectorizer_Corrupt(t *testing.T) {
	_, err := ReadVectorizer(bytes.NewReader([]byte("not gob")))
	assert.Error(t, err)
}
