package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpdateFixedBillRequest struct {
	Name        *string  `json:"name"`
	Amount      *float64 `json:"amount"`
	DueDay      *int     `json:"dueDay"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Autopay     *bool    `json:"autopay"`
	Reminder    *bool    `json:"reminder"`
	Status      *string  `json:"status"`
}

type PayBillRequest struct {
	YearMonth string   `json:"yearMonth"`
	Amount    *float64 `json:"amount"`
}

type UnpayBillRequest struct {
	YearMonth string `json:"yearMonth"`
}

func ListFixedBills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	includePayment := c.DefaultQuery("include_payment", "true") == "true"
	bills, err := Bills.ListFixedBills(c.Request.Context(), userID, c.Query("status"), includePayment)
	if err != nil {
		logger.Get().Error("error listing fixed bills",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func CreateFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateFixedBillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := Bills.CreateFixedBill(c.Request.Context(), userID, req)
	if err != nil {
		logger.Get().Error("error creating fixed bill",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Get().Info("fixed bill created",
		zap.String("user_id", userID),
		zap.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Fixed bill created successfully",
		"bill":    bill,
	})
}

func GetFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bill, err := Bills.GetFixedBillByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

func UpdateFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateFixedBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := Bills.UpdateFixedBill(c.Request.Context(), userID, c.Param("id"), services.FixedBillUpdate{
		Name:        req.Name,
		Amount:      req.Amount,
		DueDay:      req.DueDay,
		Description: req.Description,
		Category:    req.Category,
		Autopay:     req.Autopay,
		Reminder:    req.Reminder,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fixed bill updated successfully",
		"bill":    bill,
	})
}

func CancelFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bill, err := Bills.CancelFixedBill(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("fixed bill cancelled",
		zap.String("user_id", userID),
		zap.String("bill_id", bill.BillID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Fixed bill cancelled successfully",
		"note":    "The bill was not permanently deleted and can be reactivated if needed",
	})
}

func PayFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	billID := c.Param("id")
	record, err := Bills.MarkBillAsPaid(c.Request.Context(), userID, billID, req.YearMonth, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("fixed bill paid",
		zap.String("user_id", userID),
		zap.String("bill_id", billID),
		zap.String("month", req.YearMonth))
	c.JSON(http.StatusOK, gin.H{
		"message":   "Bill marked as paid for " + req.YearMonth,
		"billId":    billID,
		"yearMonth": req.YearMonth,
		"payment":   record,
	})
}

func UnpayFixedBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UnpayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	billID := c.Param("id")
	if err := Bills.MarkBillAsUnpaid(c.Request.Context(), userID, billID, req.YearMonth); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Payment removed for " + req.YearMonth,
		"billId":    billID,
		"yearMonth": req.YearMonth,
	})
}

func GetFixedBillsSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := Bills.GetFixedBillsSummary(c.Request.Context(), userID, c.Param("yearMonth"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
