package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	item := map[string]types.AttributeValue{
		"species": &types.AttributeValueMemberS{Value: "dog"},
		"count":   &types.AttributeValueMemberN{Value: "3"},
	}

	assert.Equal(t, "dog", ExtractString(item, "species"))
	assert.Equal(t, "", ExtractString(item, "missing"))
	assert.Equal(t, "", ExtractString(item, "count"), "non-string attributes yield empty")
}
