package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/nutshop/internal/models"
)

// checkMoney rejects positive amounts the store cannot hold exactly.
// The exponent guard keeps Round and Cmp from rescaling absurd inputs like 1e999999.
func checkMoney(d decimal.Decimal, what string) error {
	tooLarge := validation(fmt.Sprintf("%s слишком велика", what))
	tooPrecise := validation(fmt.Sprintf("%s должна иметь не более %d знаков после запятой", what, models.MoneyScale))

	switch exp := d.Exponent(); {
	case exp > 16:
		return tooLarge
	case exp < -20:
		return tooPrecise
	case d.Abs().GreaterThanOrEqual(models.MaxMoney):
		return tooLarge
	case !d.Equal(d.Round(models.MoneyScale)):
		return tooPrecise
	}
	return nil
}
