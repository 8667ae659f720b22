package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"curtainpro-backend/config"
	"curtainpro-backend/models"
)

type DashboardOverview struct {
	TotalCustomers int64         `json:"totalCustomers"`
	TotalOrders    int64         `json:"totalOrders"`
	OrdersThisWeek int64         `json:"ordersThisWeek"`
	RecentOrders   []RecentOrder `json:"recentOrders"`
}

type RecentOrder struct {
	OrderID      string    `json:"orderId"`
	Reference    string    `json:"reference"`
	CustomerName string    `json:"customerName"`
	Windows      int       `json:"windows"`
	CreatedAt    time.Time `json:"createdAt"`
}

func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	config.DB.Model(&models.Customer{}).Count(&overview.TotalCustomers)
	config.DB.Model(&models.Order{}).Count(&overview.TotalOrders)

	weekAgo := time.Now().AddDate(0, 0, -7)
	config.DB.Model(&models.Order{}).Where("created_at >= ?", weekAgo).Count(&overview.OrdersThisWeek)

	var orders []models.Order
	config.DB.Preload("Entries").Order("created_at DESC").Limit(5).Find(&orders)

	overview.RecentOrders = make([]RecentOrder, 0, len(orders))
	for _, o := range orders {
		var customer models.Customer
		name := ""
		if err := config.DB.Where("id = ?", o.CustomerID).First(&customer).Error; err == nil {
			name = customer.Name
		}
		overview.RecentOrders = append(overview.RecentOrders, RecentOrder{
			OrderID:      o.ID.String(),
			Reference:    o.Reference,
			CustomerName: name,
			Windows:      len(o.Entries),
			CreatedAt:    o.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, overview)
}
