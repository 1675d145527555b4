package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"meatadmin/database"
	"meatadmin/models"
)

type ProductController struct {
	store  *database.Store
	logger *zap.Logger
}

func NewProductController(store *database.Store, logger *zap.Logger) *ProductController {
	return &ProductController{store: store, logger: logger}
}

func (pc *ProductController) Create(c *gin.Context) {
	var input struct {
		Name          string   `json:"name" binding:"required"`
		Category      string   `json:"category"`
		Price         float64  `json:"price" binding:"required"`
		Available     bool     `json:"available"`
		Unit          string   `json:"unit"`
		CuttingTypes  []string `json:"cuttingTypes"`
		AvailableDays []int    `json:"availableDays"`
		DisplayOrder  int      `json:"displayOrder"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and price are required"})
		return
	}

	unit := input.Unit
	if unit == "" {
		unit = models.UnitKG
	}

	product := models.Product{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		Category:       input.Category,
		CurrentPrice:   input.Price,
		PreviousPrice:  input.Price,
		PriceDirection: models.PriceSame,
		Available:      input.Available,
		Unit:           unit,
		CuttingTypes:   input.CuttingTypes,
		AvailableDays:  input.AvailableDays,
		DisplayOrder:   input.DisplayOrder,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := pc.store.Products.InsertOne(ctx, product); err != nil {
		pc.logger.Error("product create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product created", "product": product})
}

// List returns the catalog in display order, ties broken by insertion.
func (pc *ProductController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := pc.store.Products.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product = []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Fetch products success",
		"count":    len(products),
		"products": products,
	})
}

// Update edits catalog fields. A price change rolls the one-step price
// history and recomputes direction and percentage together.
func (pc *ProductController) Update(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Name          *string   `json:"name"`
		Category      *string   `json:"category"`
		Price         *float64  `json:"price"`
		Available     *bool     `json:"available"`
		Unit          *string   `json:"unit"`
		CuttingTypes  *[]string `json:"cuttingTypes"`
		AvailableDays *[]int    `json:"availableDays"`
		DisplayOrder  *int      `json:"displayOrder"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.store.Products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Category != nil {
		update["category"] = *body.Category
	}
	if body.Available != nil {
		update["available"] = *body.Available
	}
	if body.Unit != nil {
		update["unit"] = *body.Unit
	}
	if body.CuttingTypes != nil {
		update["cuttingTypes"] = *body.CuttingTypes
	}
	if body.AvailableDays != nil {
		update["availableDays"] = *body.AvailableDays
	}
	if body.DisplayOrder != nil {
		update["displayOrder"] = *body.DisplayOrder
	}
	if body.Price != nil && *body.Price != product.CurrentPrice {
		product.ApplyPrice(*body.Price)
		update["previousPrice"] = product.PreviousPrice
		update["currentPrice"] = product.CurrentPrice
		update["priceDirection"] = product.PriceDirection
		update["priceChangePercentage"] = product.PriceChangePercentage
	}
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = pc.store.Products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		pc.logger.Error("product update failed",
			zap.String("product_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (pc *ProductController) Delete(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := pc.store.Products.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		pc.logger.Error("product delete failed",
			zap.String("product_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "id": id})
}
