package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// PaymentHandler defines the interface for caregiver payouts
type PaymentHandler interface {
	List(ctx *gin.Context)
	MarkPaid(ctx *gin.Context)
}

type paymentHandler struct {
	paymentService payments.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService payments.PaymentService) PaymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// List handles the GET request for payments
// @Summary List payments
// @Description Admins see every payment and may filter; everyone else sees their own.
// @Tags Payment
// @Produce json
// @Param payeeId query string false "Payee user ID (admin only)"
// @Param status query string false "Payment status (admin only)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Router /payments [get]
func (handler *paymentHandler) List(ctx *gin.Context) {
	caller := currentPrincipal(ctx)

	var (
		list []*payments.Payment
		err  error
	)
	if caller.Can(users.PermPaymentsManage) {
		query := &payments.Query{
			PayeeID: ctx.Query("payeeId"),
			Limit:   strutil.ConvertToInt(ctx.Query("limit")),
			Offset:  strutil.ConvertToInt(ctx.Query("offset")),
		}
		if status := strutil.SplitCSV(ctx.Query("status")); len(status) == 1 {
			query.Status = payments.Status(status[0])
		}
		list, err = handler.paymentService.ListAll(ctx.Request.Context(), caller, query)
	} else {
		list, err = handler.paymentService.ListMine(ctx.Request.Context(), caller)
	}
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []PaymentResponse{}
	for _, payment := range list {
		listResponse = append(listResponse, newPaymentResponse(payment))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *paymentHandler) MarkPaid(ctx *gin.Context) {
	payment, err := handler.paymentService.MarkPaid(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newPaymentResponse(payment))
}
