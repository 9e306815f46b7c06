// Package redis connects to the optional Redis server used for shared
// upload rate limits.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	store := ratelimit.NewRedisStore(client, cfg.Redis.KeyPrefix+"ratelimit:")
package redis
