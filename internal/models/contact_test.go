package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddTag(t *testing.T) {
	tags := AddTag(nil, "referral")
	tags = AddTag(tags, "warm")
	assert.Equal(t, []string{"referral", "warm"}, tags)

	// duplicate is a no-op, order preserved
	tags = AddTag(tags, "referral")
	assert.Equal(t, []string{"referral", "warm"}, tags)

	// dedup is case-sensitive
	tags = AddTag(tags, "Referral")
	assert.Equal(t, []string{"referral", "warm", "Referral"}, tags)
}

func TestNormalizeRef(t *testing.T) {
	assert.Nil(t, NormalizeRef(""))

	ref := NormalizeRef("job-1")
	if assert.NotNil(t, ref) {
		assert.Equal(t, "job-1", *ref)
	}
}
