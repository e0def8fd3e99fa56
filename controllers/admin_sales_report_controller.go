package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

type salesSummary struct {
	TotalSales      int     `json:"total_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalItems      int     `json:"total_items"`
	TotalCustomers  int     `json:"total_customers"`
	TotalDiscounts  float64 `json:"total_discounts"`
	TotalShipping   float64 `json:"total_shipping"`
	CanceledOrders  int     `json:"canceled_orders"`
	AverageOrderVal float64 `json:"average_order_value"`
}

// reportRange resolves the period query param to a start and end time
func reportRange(now time.Time, period string) (time.Time, time.Time, bool) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		return end.AddDate(0, 0, -7), end, true
	case "month":
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		return end.AddDate(0, 0, -30), end, true
	}
	return time.Time{}, time.Time{}, false
}

func summarizeOrders(orders []models.Order) salesSummary {
	var summary salesSummary
	customerSet := make(map[uint]bool)
	for _, order := range orders {
		if order.OrderStatus == models.OrderStatusCanceled {
			summary.CanceledOrders++
			continue
		}
		summary.TotalSales++
		summary.TotalRevenue += order.TotalAmount
		summary.TotalDiscounts += order.DiscountAmount
		summary.TotalShipping += order.ShippingCost
		customerSet[order.UserID] = true
		for _, item := range order.Products {
			summary.TotalItems += item.Quantity
		}
	}
	summary.TotalCustomers = len(customerSet)
	if summary.TotalSales > 0 {
		summary.AverageOrderVal = math.Round((summary.TotalRevenue/float64(summary.TotalSales))*100) / 100
	}
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100
	summary.TotalDiscounts = math.Round(summary.TotalDiscounts*100) / 100
	summary.TotalShipping = math.Round(summary.TotalShipping*100) / 100
	return summary
}

func fetchReportOrders(startDate, endDate time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := config.DB.Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Preload("User").
		Preload("Products.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// AdminSalesReport returns a sales summary for the requested period
func AdminSalesReport(c *gin.Context) {
	utils.LogInfo("AdminSalesReport called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportRange(time.Now(), period)
	if !ok {
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	orders, err := fetchReportOrders(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	utils.Success(c, "Sales report generated successfully", gin.H{
		"period":  period,
		"from":    startDate.Format("2006-01-02"),
		"to":      endDate.AddDate(0, 0, -1).Format("2006-01-02"),
		"summary": summarizeOrders(orders),
	})
}

// DownloadSalesReportExcel streams the sales report as an Excel workbook
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportRange(time.Now(), period)
	if !ok {
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	orders, err := fetchReportOrders(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))
	summary := summarizeOrders(orders)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	// Company details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("STYLENEST - Sales Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("42 Fashion Avenue")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@stylenest.io")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.AddDate(0, 0, -1).Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Order ID", "User ID", "User Name", "Date", "Items", "Discount", "Shipping", "Total", "Payment Mode", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Products {
			itemCount += item.Quantity
		}
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetInt(int(order.UserID))
		row.AddCell().SetString(order.User.Username)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(itemCount)
		row.AddCell().SetFloat(order.DiscountAmount)
		row.AddCell().SetFloat(order.ShippingCost)
		row.AddCell().SetFloat(order.TotalAmount)
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetString(order.OrderStatus)
	}

	sheet.AddRow() // spacing

	// Summary section
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Sales", fmt.Sprintf("%d", summary.TotalSales)},
		{"Total Revenue", fmt.Sprintf("%.2f", summary.TotalRevenue)},
		{"Total Items", fmt.Sprintf("%d", summary.TotalItems)},
		{"Total Customers", fmt.Sprintf("%d", summary.TotalCustomers)},
		{"Total Discounts", fmt.Sprintf("%.2f", summary.TotalDiscounts)},
		{"Total Shipping", fmt.Sprintf("%.2f", summary.TotalShipping)},
		{"Canceled Orders", fmt.Sprintf("%d", summary.CanceledOrders)},
		{"Avg. Order Value", fmt.Sprintf("%.2f", summary.AverageOrderVal)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Generated Excel report for period %s", period)
}
