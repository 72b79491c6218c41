package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bankaccount-go/internal/models"
	"bankaccount-go/internal/registry"
)

type FormattedCharges struct {
	Balance             string `json:"balance"`
	ServiceCharges      string `json:"service_charges"`
	BalanceAfterCharges string `json:"balance_after_charges"`
}

type ChargeSummary struct {
	AccountNumber       int64            `json:"account_number"`
	Type                models.Kind      `json:"type"`
	Balance             float64          `json:"balance"`
	BaseServiceCharge   float64          `json:"base_service_charge"`
	ServiceCharges      float64          `json:"service_charges"`
	Surcharge           float64          `json:"surcharge"` // charges above the base
	BalanceAfterCharges float64          `json:"balance_after_charges"`
	Formatted           FormattedCharges `json:"formatted"`
}

func summarize(s registry.Snapshot) ChargeSummary {
	balance := decimal.NewFromFloat(s.Balance)
	charges := decimal.NewFromFloat(s.ServiceCharges)
	after := balance.Sub(charges).Round(2).InexactFloat64()

	return ChargeSummary{
		AccountNumber:       s.AccountNumber,
		Type:                s.Kind,
		Balance:             s.Balance,
		BaseServiceCharge:   models.BaseServiceCharge,
		ServiceCharges:      s.ServiceCharges,
		Surcharge:           charges.Sub(decimal.NewFromFloat(models.BaseServiceCharge)).Round(2).InexactFloat64(),
		BalanceAfterCharges: after,
		Formatted: FormattedCharges{
			Balance:             models.FormatMoney(s.Balance),
			ServiceCharges:      models.FormatMoney(s.ServiceCharges),
			BalanceAfterCharges: models.FormatMoney(after),
		},
	}
}

// GET /v1/accounts/:number/service-charges
func (s *Server) serviceCharges(c *gin.Context) {
	number, ok := accountNumber(c)
	if !ok {
		return
	}
	snap, err := s.accounts.Get(number)
	if err != nil {
		s.fail(c, "service_charges", err)
		return
	}
	c.JSON(200, summarize(snap))
}
