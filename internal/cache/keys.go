package cache

import "time"

const (
	// recent:{country}:{handles} -> []ProductCard
	KeyRecentProducts = "recent:%s:%s"

	// reviews:{per_page}:{page} -> []Review
	KeyReviews = "reviews:%d:%d"
)

var (
	TTLRecentProducts = 5 * time.Minute
	TTLReviews        = time.Hour
)
