// Package jitter предоставляет утилиты для добавления случайности в интервалы отступления (backoff)
// и простой повтор операций с экспоненциальной задержкой.
package jitter

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return d + time.Duration(rand.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff вычисляет экспоненциальное отступление с джиттером.
// attempt — номер текущей попытки повтора (нумерация с нуля).
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}

// Policy описывает параметры повторов.
type Policy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent помечает ошибку как неповторяемую: Retry сразу вернёт её без обёртки.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry выполняет fn до Attempts раз, пока она возвращает ошибку.
// Возвращает последнюю ошибку либо ошибку контекста, если ожидание было прервано.
func Retry(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-time.After(ExponentialBackoff(p.Base, p.Max, attempt, DefaultJitter)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}
