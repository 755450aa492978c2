package httpserver

import (
	"context"
	"log"
	"time"

	"supsindex-navigator/internal/domain"
	affiliationsvc "supsindex-navigator/internal/service/affiliation"
	cartsvc "supsindex-navigator/internal/service/cart"
	checkoutsvc "supsindex-navigator/internal/service/checkout"
	orderssvc "supsindex-navigator/internal/service/orders"
	vouchersvc "supsindex-navigator/internal/service/voucher"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	CartSvc        CartService
	OrdersSvc      OrdersService
	CheckoutSvc    CheckoutService
	VoucherSvc     VoucherService
	AffiliationSvc AffiliationService
}

type CartService interface {
	List(ctx context.Context, userID string) ([]domain.LineItem, error)
	Add(ctx context.Context, userID string, in cartsvc.AddInput) ([]domain.LineItem, error)
}

type OrdersService interface {
	List(ctx context.Context, userID string, f orderssvc.Filter) ([]domain.Order, error)
	Remove(ctx context.Context, userID, id string) (orderssvc.RemoveResult, error)
	UpdateBooking(ctx context.Context, userID, itemID string, date time.Time, slot string) error
	CompleteTest(ctx context.Context, userID, orderID string) error
}

type CheckoutService interface {
	Quote(ctx context.Context, userID string, in checkoutsvc.Input) (checkoutsvc.Totals, error)
	Pay(ctx context.Context, userID string, in checkoutsvc.Input) ([]domain.StoredOrder, checkoutsvc.Totals, error)
}

type VoucherService interface {
	Issue(ctx context.Context, userID string, in vouchersvc.IssueInput) (*domain.Voucher, error)
	List(ctx context.Context, userID string) ([]domain.Voucher, error)
}

type AffiliationService interface {
	Register(ctx context.Context, userID string, in affiliationsvc.RegisterInput) (*domain.AffiliationCode, error)
	List(ctx context.Context, userID string) ([]domain.AffiliationCode, error)
}

// buildRouter wires routes for the dashboard API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/catalog/assessments", listAssessmentsHandler)
	router.GET("/catalog/assessments/:code", getAssessmentHandler)

	user := router.Group("/users/:userID")
	{
		user.GET("/cart", listCartHandler(deps.CartSvc))
		user.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		user.PATCH("/cart/items/:itemID/booking", updateBookingHandler(deps.OrdersSvc))
		user.DELETE("/cart/items/:itemID", removeOrderHandler(deps.OrdersSvc))

		user.GET("/orders", listOrdersHandler(deps.OrdersSvc))
		user.DELETE("/orders/:orderID", removeOrderHandler(deps.OrdersSvc))
		user.POST("/orders/:orderID/test-completion", completeTestHandler(deps.OrdersSvc))

		user.POST("/checkout/quote", quoteHandler(deps.CheckoutSvc))
		user.POST("/checkout/pay", payHandler(deps.CheckoutSvc))

		user.GET("/vouchers", listVouchersHandler(deps.VoucherSvc))
		user.POST("/vouchers", issueVoucherHandler(deps.VoucherSvc))

		user.GET("/affiliations", listAffiliationsHandler(deps.AffiliationSvc))
		user.POST("/affiliations", registerAffiliationHandler(deps.AffiliationSvc))
	}

	return router
}
