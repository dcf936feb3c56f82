package services

import (
	"errors"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

// ProductInput carries the mutable fields of a catalog entry.
type ProductInput struct {
	Name             string
	PriceCurrency    *float64
	CostCredits      *float64
	CreditsPerDollar *float64
	VariableGrant    bool
	GrantMinCents    *int
	GrantMaxCents    *int
}

// GetProduct fetches one catalog entry.
func GetProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindProducts lists the catalog.
func FindProducts() ([]models.Product, error) {
	var products []models.Product
	err := database.DB.Order("id asc").Find(&products).Error
	return products, err
}

// CreateProduct adds a catalog entry.
func CreateProduct(in ProductInput) (*models.Product, error) {
	product := models.Product{
		Name:             in.Name,
		PriceCurrency:    in.PriceCurrency,
		CostCredits:      in.CostCredits,
		CreditsPerDollar: in.CreditsPerDollar,
		VariableGrant:    in.VariableGrant,
		GrantMinCents:    in.GrantMinCents,
		GrantMaxCents:    in.GrantMaxCents,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalog entry's fields.
func UpdateProduct(productID uint, in ProductInput) (*models.Product, error) {
	product, err := GetProduct(productID)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.PriceCurrency = in.PriceCurrency
	product.CostCredits = in.CostCredits
	product.CreditsPerDollar = in.CreditsPerDollar
	product.VariableGrant = in.VariableGrant
	product.GrantMinCents = in.GrantMinCents
	product.GrantMaxCents = in.GrantMaxCents

	if err := database.DB.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a catalog entry. Existing orders keep their rows.
func DeleteProduct(productID uint) error {
	product, err := GetProduct(productID)
	if err != nil {
		return err
	}
	return database.DB.Delete(product).Error
}
