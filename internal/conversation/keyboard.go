package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// Button data has the form "<field>:<value>".
const (
	fieldType     = "type"
	fieldCurrency = "currency"
	fieldAccount  = "account"
	fieldCategory = "category"
)

var accountTypeLabels = map[models.AccountType]string{
	models.AccountUsual:   "Usual",
	models.AccountSavings: "Savings",
	models.AccountCredit:  "Credit",
}

func choiceData(field, value string) string {
	return field + ":" + value
}

// choiceValue returns the value of a button press answering field.
func choiceValue(ev Event, field string) (string, bool) {
	if ev.Kind != EventChoice {
		return "", false
	}
	f, v, ok := strings.Cut(ev.Choice, ":")
	if !ok || f != field || v == "" {
		return "", false
	}
	return v, true
}

// textValue returns the text of a message, rejecting button presses.
func textValue(ev Event) (string, bool) {
	if ev.Kind != EventText {
		return "", false
	}
	return ev.Text, true
}

// layout splits buttons into rows of at most perRow.
func layout(choices []Choice, perRow int) [][]Choice {
	rows := make([][]Choice, 0, (len(choices)+perRow-1)/perRow)
	for len(choices) > perRow {
		rows = append(rows, choices[:perRow])
		choices = choices[perRow:]
	}
	if len(choices) > 0 {
		rows = append(rows, choices)
	}
	return rows
}

func accountTypeKeyboard() [][]Choice {
	choices := make([]Choice, 0, len(models.AccountTypes))
	for _, t := range models.AccountTypes {
		choices = append(choices, Choice{Label: accountTypeLabels[t], Data: choiceData(fieldType, string(t))})
	}
	return layout(choices, len(choices))
}

func currencyKeyboard() [][]Choice {
	choices := make([]Choice, 0, len(models.Currencies))
	for _, c := range models.Currencies {
		choices = append(choices, Choice{Label: string(c), Data: choiceData(fieldCurrency, string(c))})
	}
	return layout(choices, len(choices))
}

func accountKeyboard(accounts []models.Account) [][]Choice {
	choices := make([]Choice, 0, len(accounts))
	for _, a := range accounts {
		choices = append(choices, Choice{
			Label: fmt.Sprintf("%s (%s)", a.Name, a.Currency),
			Data:  choiceData(fieldAccount, strconv.FormatInt(a.AccountID, 10)),
		})
	}
	return layout(choices, 2)
}

// categoryKeyboard carries the 1-based position of each category as button data.
func categoryKeyboard() [][]Choice {
	choices := make([]Choice, 0, len(models.Categories))
	for i, c := range models.Categories {
		choices = append(choices, Choice{Label: c, Data: choiceData(fieldCategory, strconv.Itoa(i+1))})
	}
	return layout(choices, 2)
}
