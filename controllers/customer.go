package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"curtainpro-backend/config"
	"curtainpro-backend/metrics"
	"curtainpro-backend/models"
	"curtainpro-backend/utils"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Showroom string `json:"showroom"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Showroom *string `json:"showroom"`
}

// FindOrCreateCustomer resolves customer identity the way the order form
// does: exact match on non-empty phone first, then exact match on non-empty
// name, else a fresh record. Runs inside the caller's transaction so a
// failed order save never leaves a dangling new customer.
func FindOrCreateCustomer(tx *gorm.DB, name, phone, address, showroom string) (models.Customer, bool, error) {
	name = strings.TrimSpace(name)
	phone = utils.NormalizePhone(phone)
	address = strings.TrimSpace(address)

	var customer models.Customer

	if phone != "" {
		err := tx.Where("phone = ?", phone).First(&customer).Error
		if err == nil {
			return customer, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, false, err
		}
	}

	if name != "" {
		err := tx.Where("name = ?", name).First(&customer).Error
		if err == nil {
			return customer, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, false, err
		}
	}

	customer = models.Customer{
		Name:     name,
		Phone:    phone,
		Address:  address,
		Showroom: showroom,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return models.Customer{}, false, err
	}
	metrics.CustomersCreated.Inc()
	return customer, true, nil
}

// CreateCustomer creates a new customer record directly
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		Name:     strings.TrimSpace(input.Name),
		Phone:    utils.NormalizePhone(input.Phone),
		Address:  strings.TrimSpace(input.Address),
		Showroom: input.Showroom,
	}

	// Check if phone already exists
	if customer.Phone != "" {
		var existing models.Customer
		if err := config.DB.Where("phone = ?", customer.Phone).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	metrics.CustomersCreated.Inc()

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// SearchCustomers finds customers whose name or phone contains the search
// term, case-insensitively
func SearchCustomers(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Search term required")
		return
	}

	like := "%" + term + "%"
	var customers []models.Customer
	if err := config.DB.
		Where("name ILIKE ? OR phone ILIKE ?", like, like).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = utils.NormalizePhone(*input.Phone)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.Showroom != nil {
		customer.Showroom = *input.Showroom
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("id = ?", customerUUID).Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
