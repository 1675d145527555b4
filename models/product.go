package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceDirection string

const (
	PriceUp   PriceDirection = "UP"
	PriceDown PriceDirection = "DOWN"
	PriceSame PriceDirection = "SAME"
)

// Units a product can be sold in.
const (
	UnitKG    = "KG"
	UnitPC    = "PC"
	UnitLiter = "LITER"
	UnitDozen = "DOZEN"
)

type Product struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name" binding:"required"`
	Category              string             `bson:"category" json:"category"`
	CurrentPrice          float64            `bson:"currentPrice" json:"currentPrice"`
	PreviousPrice         float64            `bson:"previousPrice" json:"previousPrice"`
	PriceDirection        PriceDirection     `bson:"priceDirection" json:"priceDirection"`
	PriceChangePercentage float64            `bson:"priceChangePercentage" json:"priceChangePercentage"`
	Available             bool               `bson:"available" json:"available"`
	Unit                  string             `bson:"unit" json:"unit"`
	CuttingTypes          []string           `bson:"cuttingTypes,omitempty" json:"cuttingTypes,omitempty"`
	// AvailableDays holds weekday numbers 0-6; empty means every day.
	AvailableDays []int     `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	DisplayOrder  int       `bson:"displayOrder" json:"displayOrder"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplyPrice rolls the one-step price history and recomputes both derived
// fields together. Direction is the sign of the change; the percentage is
// |change| relative to the previous price, rounded to 2 decimals.
func (p *Product) ApplyPrice(newPrice float64) {
	p.PreviousPrice = p.CurrentPrice
	p.CurrentPrice = newPrice

	diff := p.CurrentPrice - p.PreviousPrice
	switch {
	case diff > 0:
		p.PriceDirection = PriceUp
	case diff < 0:
		p.PriceDirection = PriceDown
	default:
		p.PriceDirection = PriceSame
	}

	if p.PreviousPrice > 0 {
		p.PriceChangePercentage = math.Round(math.Abs(diff)/p.PreviousPrice*100*100) / 100
	} else {
		p.PriceChangePercentage = 0
	}
}

// AvailableOn reports whether the product can be ordered on the given
// weekday. A missing availableDays list means every day.
func (p Product) AvailableOn(day time.Weekday) bool {
	if len(p.AvailableDays) == 0 {
		return true
	}
	for _, d := range p.AvailableDays {
		if d == int(day) {
			return true
		}
	}
	return false
}
