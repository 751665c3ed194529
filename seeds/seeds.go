package seeds

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	numUsers    = 25
	numSellers  = 5
	numProducts = 40
	numOrders   = 60
	numReviews  = 120
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE reviews, order_items, orders, product_tags, products, tags, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting tags and products")
	if err := seedProducts(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	log.Println("[seed] inserting orders")
	if err := seedOrders(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	log.Println("[seed] inserting reviews")
	if err := seedReviews(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for i := 0; i < numUsers; i++ {
		role := "buyer"
		if i < numSellers {
			role = "seller"
		}
		username := fmt.Sprintf("%s_%d", role, i+1)
		contact := fmt.Sprintf("+92%010d", rng.Intn(1_000_000_000))
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, username, role, contact, createdAt)
	}

	query := "INSERT INTO users (username, role, contact_number, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	categories := []string{"electronics", "fashion", "books", "toys", "mobiles", "laptops", "accessories", "other"}
	names := map[string][]string{
		"electronics": {"Wireless Earbuds", "Smart Speaker", "Bluetooth Tracker", "Action Camera", "Noise Cancelling Headphones"},
		"fashion":     {"Denim Jacket", "Leather Belt", "Running Shoes", "Wool Scarf", "Canvas Sneakers"},
		"books":       {"The Silent Library", "Gardens of Clay", "A History of Salt", "Night Trains", "The Cartographer"},
		"toys":        {"Building Blocks Set", "Remote Control Car", "Plush Bear", "Puzzle Cube", "Wooden Train"},
		"mobiles":     {"Galaxy Phone", "Pixel Phone", "Budget Smartphone", "Flip Phone", "Rugged Phone"},
		"laptops":     {"Ultrabook 13", "Gaming Laptop 15", "Workstation 17", "Chromebook", "Convertible 2-in-1"},
		"accessories": {"Phone Case", "Laptop Sleeve", "USB-C Hub", "Screen Protector", "Charging Dock"},
		"other":       {"Water Bottle", "Desk Lamp", "Yoga Mat", "Travel Mug", "Notebook Set"},
	}
	tagCaptions := []string{"wireless", "portable", "premium", "budget", "gift", "kids", "outdoor", "office", "travel", "gaming"}

	// Tags are deduplicated by caption: get-or-create semantics.
	for _, caption := range tagCaptions {
		if _, err := pool.Exec(ctx,
			`INSERT INTO tags (caption) VALUES ($1) ON CONFLICT (caption) DO NOTHING`, caption,
		); err != nil {
			return fmt.Errorf("insert tag %s: %w", caption, err)
		}
	}

	for i := 0; i < numProducts; i++ {
		category := categories[i%len(categories)]
		nameList := names[category]
		name := nameList[i%len(nameList)]
		if i >= len(categories)*len(nameList) {
			name = fmt.Sprintf("%s %d", name, i)
		}
		slug := fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.ToLower(name), " ", "-"), i+1)
		description := fmt.Sprintf("A quality %s product. %s for everyday use.", category, name)
		excerpt := fmt.Sprintf("%s in %s", name, category)
		price := int64(rng.Intn(49_900) + 100)
		quantity := rng.Intn(50) + 1
		sellerID := int64(rng.Intn(numSellers) + 1)

		var productID int64
		err := pool.QueryRow(ctx,
			`INSERT INTO products (name, slug, category, description, excerpt, price, quantity, seller_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			name, slug, category, description, excerpt, price, quantity, sellerID,
			time.Now().AddDate(0, 0, -rng.Intn(365)),
		).Scan(&productID)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", name, err)
		}

		// 1-3 tags per product
		for _, t := range rng.Perm(len(tagCaptions))[:rng.Intn(3)+1] {
			if _, err := pool.Exec(ctx,
				`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				productID, int64(t+1),
			); err != nil {
				return fmt.Errorf("insert product tag: %w", err)
			}
		}
	}
	return nil
}

func seedOrders(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	statuses := []string{"COMPLETED", "PENDING", "CANCELLED"}
	statusWeights := []float64{0.7, 0.2, 0.1}

	for n := 0; n < numOrders; n++ {
		userID := int64(rng.Intn(numUsers-numSellers) + numSellers + 1)
		status := weightedChoice(rng, statuses, statusWeights)
		orderedAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		var orderID int64
		err := pool.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, shipping_address, ordered_at)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			userID, status, fmt.Sprintf("Street %d, City", rng.Intn(100)+1), orderedAt,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		var total int64
		for m, itemCount := 0, rng.Intn(3)+1; m < itemCount; m++ {
			productID := int64(rng.Intn(numProducts) + 1)
			quantity := rng.Intn(3) + 1
			var price int64
			if err := pool.QueryRow(ctx,
				`SELECT price FROM products WHERE id = $1`, productID,
			).Scan(&price); err != nil {
				return fmt.Errorf("lookup product price: %w", err)
			}
			if _, err := pool.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
				 VALUES ($1, $2, $3, $4)`,
				orderID, productID, quantity, price,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			total += price * int64(quantity)
		}

		if _, err := pool.Exec(ctx,
			`UPDATE orders SET total_amount = $1 WHERE id = $2`, total, orderID,
		); err != nil {
			return fmt.Errorf("update order total: %w", err)
		}
	}
	return nil
}

func seedReviews(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	texts := []string{
		"Great quality, would buy again.",
		"Arrived quickly and works as described.",
		"Not what I expected, but decent for the price.",
		"Excellent value. Highly recommended.",
		"Stopped working after a week.",
		"My kids love it.",
		"Perfect for travel.",
		"",
	}

	seen := make(map[[2]int64]bool)
	rows := []string{}
	args := []any{}

	for n := 0; n < numReviews; n++ {
		reviewerID := int64(rng.Intn(numUsers-numSellers) + numSellers + 1)
		productID := int64(rng.Intn(numProducts) + 1)

		key := [2]int64{reviewerID, productID}
		if seen[key] {
			continue
		}
		seen[key] = true

		rating := rng.Intn(5) + 1
		text := texts[rng.Intn(len(texts))]
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, reviewerID, productID, rating, text, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO reviews (reviewer_id, product_id, rating, review_text, created_at) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
