package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories depend on. It is the
// universal client so a cluster can be swapped in without touching them.
type Client interface {
	redis.UniversalClient
}
