package services

import (
	goContext "context"
	"fmt"
	"sync"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RateLimitService throttles sensitive endpoints with a fixed window counter
// kept in redis, keyed by endpoint type and client IP.
type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		"refresh": {
			EndpointType: "refresh",
			MaxRequests:  30,
			WindowSize:   15 * time.Minute,
			Description:  "Token refresh rate limit",
			IsActive:     true,
		},
		"explain": {
			EndpointType: "explain",
			MaxRequests:  20,
			WindowSize:   time.Hour,
			Description:  "Text explanation rate limit",
			IsActive:     true,
		},
		"download": {
			EndpointType: "download",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Book download rate limit",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) getConfig(endpointType string) *RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.configs[endpointType]
}

// Limit returns a middleware enforcing the named endpoint config. Unknown or
// inactive configs pass everything through.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		config := svc.getConfig(endpointType)
		if config == nil || !config.IsActive {
			return c.Next()
		}

		allowed, err := svc.allow(config, c.IP())
		if err != nil {
			// Redis being down should not lock everyone out.
			log.WithError(err).Warn("Rate limit check failed")
			return c.Next()
		}
		if !allowed {
			return shared.NewTooManyRequestsError(nil, "Juda ko'p so'rov yuborildi. Keyinroq urinib ko'ring")
		}

		return c.Next()
	}
}

func (svc *RateLimitService) allow(config *RateLimitConfig, clientIP string) (bool, error) {
	ctx := goContext.Background()

	window := time.Now().Unix() / int64(config.WindowSize.Seconds())
	key := fmt.Sprintf("rate_limit:%s:%s:%d", config.EndpointType, clientIP, window)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, config.WindowSize); err != nil {
			return false, err
		}
	}

	return count <= config.MaxRequests, nil
}
