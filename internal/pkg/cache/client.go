package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define o contrato de interface para qualquer serviço de cache que
// o armazenamento de sessões e o rate limiter possam usar.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Swap grava value em key e devolve o valor anterior ("" se não havia)
	// numa única operação atômica.
	Swap(ctx context.Context, key, value string, expiration time.Duration) (string, error)
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = redis.Nil

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient cria o cliente e faz um PING para garantir que o Redis está disponível.
func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("não foi possível conectar ao Redis em %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get recupera o valor associado a uma chave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set define um valor para uma chave. expiration 0 significa sem expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Swap executa GETSET (e EXPIRE, se houver TTL) dentro de MULTI/EXEC.
func (c *RedisClient) Swap(ctx context.Context, key, value string, expiration time.Duration) (string, error) {
	var getSet *redis.StringCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getSet = pipe.GetSet(ctx, key, value)
		if expiration > 0 {
			pipe.Expire(ctx, key, expiration)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	previous, err := getSet.Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return previous, nil
}

// Incr incrementa um contador e devolve o novo valor (1 se a chave não existia).
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire define o TTL de uma chave existente.
func (c *RedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

// Delete remove uma chave do cache.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	// Comando DEL, retorna o número de chaves deletadas (0 se não existir)
	return c.rdb.Del(ctx, key).Err()
}

// Ping verifica a conexão (usado pelo /healthz).
func (c *RedisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close encerra o pool de conexões.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
