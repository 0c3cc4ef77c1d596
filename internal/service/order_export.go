package service

import (
	"strconv"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/tealeg/xlsx"
)

var orderExportHeader = []string{
	"Order No", "Buyer Email", "Status", "Total (VND)",
	"Payment", "Shipping", "Recipient", "Phone",
	"Address", "City", "Created At",
}

// ExportForAdmin builds an Excel workbook of orders matching the filter.
func (s *OrderService) ExportForAdmin(filter repository.OrderListFilter) (*xlsx.File, error) {
	// No pagination on export, the whole filtered set goes into the sheet.
	filter.Page = 0
	filter.PageSize = 0
	orders, _, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, title := range orderExportHeader {
		headerRow.AddCell().Value = title
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().Value = order.OrderNo
		row.AddCell().Value = buyerEmail(&order)
		row.AddCell().Value = order.Status
		row.AddCell().Value = order.TotalAmount.String()
		row.AddCell().Value = order.PaymentMethod
		row.AddCell().Value = order.ShippingMethod
		row.AddCell().Value = order.RecipientName
		row.AddCell().Value = order.RecipientPhone
		row.AddCell().Value = order.Address
		row.AddCell().Value = order.City
		row.AddCell().Value = order.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return file, nil
}

func buyerEmail(order *models.Order) string {
	if order.User != nil && order.User.Email != "" {
		return order.User.Email
	}
	if order.RecipientEmail != "" {
		return order.RecipientEmail
	}
	return strconv.FormatUint(uint64(order.UserID), 10)
}
