package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dividizky/internal/models"
)

func TestCodec(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&CalculateRequest{People: []Person{{Name: "Ana", Expense: 12.5}}, AdditionalPeople: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"people":[{"name":"Ana","expense":12.5}],"additionalPeople":1}`, string(data))

	var req CalculateRequest
	require.NoError(t, c.Unmarshal(data, &req))
	assert.Equal(t, "Ana", req.People[0].Name)

	var empty GetSharedSettlementRequest
	require.NoError(t, c.Unmarshal(nil, &empty))
	assert.Equal(t, GetSharedSettlementRequest{}, empty)
}

func TestFromResult_EmptyListsEncodeAsArrays(t *testing.T) {
	data, err := Codec{}.Marshal(FromResult(models.ExpenseResult{NumberOfPeople: 2}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"totalExpense": 0,
		"numberOfPeople": 2,
		"perPersonExpense": 0,
		"balances": [],
		"payments": []
	}`, string(data))
}

func TestParticipantsRoundTrip(t *testing.T) {
	people := []Person{{Name: "Ana", Expense: 1}, {Name: "Beto", Expense: 2}}

	participants := Participants(people)
	assert.Equal(t, []models.Participant{{Name: "Ana", Expense: 1}, {Name: "Beto", Expense: 2}}, participants)
	assert.Equal(t, people, FromParticipants(participants))
}
