package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

func content(knowledge string) record.LocalizedContent {
	return record.LocalizedContent{Name: "Павлодар", Knowledge: knowledge}
}

func TestRetrieve_SubstringMatch(t *testing.T) {
	res := Retrieve("город", content("Павлодар — город\nоснован в 1720 году"), language.Russian)

	assert.Equal(t, Found, res.Outcome)
	assert.Equal(t, "Павлодар — город", res.Text)
	assert.Equal(t, 1, res.Lines)
}

func TestRetrieve_KeepsOrderAndOriginalText(t *testing.T) {
	k := "Первая строка про Город.\nвторая строка\nТретья: ГОРОДСКОЙ парк!"
	res := Retrieve("город?", content(k), language.Russian)

	assert.Equal(t, "Первая строка про Город.\nТретья: ГОРОДСКОЙ парк!", res.Text)
	assert.Equal(t, 2, res.Lines)
}

func TestRetrieve_AnyTokenMatches(t *testing.T) {
	k := "основан в 1720 году\nрека Иртыш\nпорт"
	res := Retrieve("Иртыш 1720", content(k), language.Russian)
	assert.Equal(t, "основан в 1720 году\nрека Иртыш", res.Text)
}

func TestRetrieve_NotStemmed(t *testing.T) {
	// "города" is not a substring of "город основан".
	res := Retrieve("города", content("город основан"), language.Russian)
	assert.Equal(t, NoMatch, res.Outcome)
}

func TestRetrieve_YoFolding(t *testing.T) {
	res := Retrieve("ёлка", content("Новогодняя елка на площади"), language.Russian)
	assert.Equal(t, "Новогодняя елка на площади", res.Text)
}

func TestRetrieve_CRLF(t *testing.T) {
	res := Retrieve("порт", content("река\r\nречной порт\r\n"), language.Russian)
	assert.Equal(t, "речной порт", res.Text)
}

func TestRetrieve_EmptyQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "?!"} {
		ru := Retrieve(q, content("город"), language.Russian)
		assert.Equal(t, EmptyQuestion, ru.Outcome)
		assert.Equal(t, "Пожалуйста, задайте вопрос.", ru.Text)

		en := Retrieve(q, content("город"), language.English)
		assert.Equal(t, "Please ask a question.", en.Text)
	}
}

func TestRetrieve_NoMatchSentinelIsNotLocalized(t *testing.T) {
	for _, lang := range language.All {
		res := Retrieve("stadium", content("Павлодар — город\nоснован в 1720 году"), lang)
		assert.Equal(t, NoMatch, res.Outcome)
		assert.Equal(t, NoInformation, res.Text)
		assert.Zero(t, res.Lines)
	}
}

func TestRetrieve_EmptyKnowledge(t *testing.T) {
	res := Retrieve("город", content(""), language.Russian)
	assert.Equal(t, NoMatch, res.Outcome)
}
