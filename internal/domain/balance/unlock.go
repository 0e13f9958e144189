package balance

import "context"

// WithUnlocked runs fn with the asset's transfer lock lifted and re-locks it
// afterwards regardless of fn's outcome. Non-locked assets run fn directly.
func WithUnlocked(ctx context.Context, repo Repository, code string, fn func() error) error {
	a, err := repo.GetAsset(ctx, code)
	if err != nil {
		return err
	}
	if !a.Locked {
		return fn()
	}
	a.Locked = false
	if err := repo.SaveAsset(ctx, a); err != nil {
		return err
	}
	defer func() {
		a.Locked = true
		_ = repo.SaveAsset(ctx, a)
	}()
	return fn()
}
