package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineContext(t *testing.T) {
	assert.Equal(t, "", CombineContext("", ""))
	assert.Equal(t, "vec", CombineContext("vec", ""))
	assert.Equal(t, "stats", CombineContext("", "stats"))
	assert.Equal(t, "vec\n\nstats", CombineContext("vec", "stats"))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Company Name: Google", "Does Google hire interns?")

	assert.Contains(t, prompt, "Context:\nCompany Name: Google\n")
	assert.Contains(t, prompt, "Student Query:\nDoes Google hire interns?\n")
	assert.Contains(t, prompt, `"`+FallbackSentence+`"`)
	assert.Contains(t, prompt, "Answer only using the context")
	assert.Contains(t, prompt, "Never describe yourself as an AI")
	assert.Contains(t, prompt, "Never give both an answer and the fallback sentence")
}
