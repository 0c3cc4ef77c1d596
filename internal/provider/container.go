package provider

import (
	"github.com/techgear-vn/techgear-api/internal/authz"
	"github.com/techgear-vn/techgear-api/internal/cache"
	"github.com/techgear-vn/techgear-api/internal/config"
	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/queue"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"
)

// Container wires repositories and services for the handlers and worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	BrandRepo         repository.BrandRepository
	CategoryRepo      repository.CategoryRepository
	BrandCategoryRepo repository.BrandCategoryRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	ReviewRepo        repository.ReviewRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserService      *service.UserService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	ProductService   *service.ProductService
	BrandService     *service.BrandService
	CategoryService  *service.CategoryService
	CartService      *service.CartService
	OrderService     *service.OrderService
	CheckoutService  *service.CheckoutService
	ReviewService    *service.ReviewService
	DashboardService *service.DashboardService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandCategoryRepo = repository.NewBrandCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	c.EmailService = service.NewEmailService(&c.Config.Email, &c.Config.Site)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.QueueClient)
	c.UserService = service.NewUserService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo, c.BrandCategoryRepo, c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.BrandCategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient)
	c.CheckoutService = service.NewCheckoutService(&c.Config.Checkout)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
