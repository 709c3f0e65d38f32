package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressModel_TableName(t *testing.T) {
	assert.Equal(t, "addresses", AddressModel{}.TableName())
}

// The partial unique index is the storage-level backstop for the
// one-default-per-owner rule; losing the tag would silently reopen the
// concurrent-create race.
func TestAddressModel_DeclaresPartialUniqueDefaultIndex(t *testing.T) {
	field, ok := reflect.TypeOf(AddressModel{}).FieldByName("OwnerID")
	require.True(t, ok)

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "uniqueIndex:uq_addresses_owner_default")
	assert.Contains(t, tag, "where:is_default")
}
