package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"raceshot-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// GetProfile fetches a profile by user id. sql.ErrNoRows propagates so
// callers can distinguish "absent" from a real failure.
func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := d.db.QueryRow(`
		SELECT id, username, email, stripe_account_id, stripe_account_status, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, userID).Scan(
		&profile.ID, &profile.Username, &profile.Email,
		&profile.StripeAccountID, &profile.StripeAccountStatus,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (d *DatabaseClient) CreateProfile(userID uuid.UUID, username, email string) (*models.Profile, error) {
	var profile models.Profile
	err := d.db.QueryRow(`
		INSERT INTO profiles (id, username, email, stripe_account_status)
		VALUES ($1, $2, $3, 'pending')
		ON CONFLICT (id) DO UPDATE SET username = profiles.username
		RETURNING id, username, email, stripe_account_id, stripe_account_status, created_at, updated_at
	`, userID, username, email).Scan(
		&profile.ID, &profile.Username, &profile.Email,
		&profile.StripeAccountID, &profile.StripeAccountStatus,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &profile, nil
}

func (d *DatabaseClient) SetStripeAccount(userID uuid.UUID, accountID string) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET stripe_account_id = $1
		WHERE id = $2
	`, accountID, userID)
	return err
}

func (d *DatabaseClient) UpdateStripeAccountStatus(userID uuid.UUID, accountID string, status models.AccountStatus) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET stripe_account_id = $1, stripe_account_status = $2
		WHERE id = $3
	`, accountID, status, userID)
	return err
}

// GetPhotosForCheckout returns the pricing rows for the requested photo ids,
// joined with each photographer's connected Stripe account. Rows come back
// in the order the ids were requested.
func (d *DatabaseClient) GetPhotosForCheckout(photoIDs []uuid.UUID) ([]models.CheckoutPhoto, error) {
	ids := make([]string, len(photoIDs))
	for i, id := range photoIDs {
		ids[i] = id.String()
	}

	rows, err := d.db.Query(`
		SELECT p.id, p.price, p.photographer_id, pr.stripe_account_id
		FROM photos p
		JOIN profiles pr ON pr.id = p.photographer_id
		JOIN unnest($1::uuid[]) WITH ORDINALITY AS req(id, ord) ON req.id = p.id
		ORDER BY req.ord
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos: %w", err)
	}
	defer rows.Close()

	var photos []models.CheckoutPhoto
	for rows.Next() {
		var photo models.CheckoutPhoto
		err := rows.Scan(&photo.ID, &photo.Price, &photo.PhotographerID, &photo.StripeAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

func (d *DatabaseClient) InsertPhoto(photo *models.Photo) (*models.Photo, error) {
	var inserted models.Photo
	err := d.db.QueryRow(`
		INSERT INTO photos (id, photographer_id, event_name, price, bib_numbers, original_path, watermark_path, preview_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, photographer_id, event_name, price, bib_numbers, original_path, watermark_path, preview_url, created_at
	`, photo.ID, photo.PhotographerID, photo.EventName, photo.Price,
		pq.Array(photo.BibNumbers), photo.OriginalPath, photo.WatermarkPath, photo.PreviewURL,
	).Scan(
		&inserted.ID, &inserted.PhotographerID, &inserted.EventName, &inserted.Price,
		pq.Array(&inserted.BibNumbers), &inserted.OriginalPath, &inserted.WatermarkPath,
		&inserted.PreviewURL, &inserted.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert photo: %w", err)
	}

	return &inserted, nil
}

func (d *DatabaseClient) GetPhoto(photoID uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := d.db.QueryRow(`
		SELECT id, photographer_id, event_name, price, bib_numbers, original_path, watermark_path, preview_url, created_at
		FROM photos
		WHERE id = $1
	`, photoID).Scan(
		&photo.ID, &photo.PhotographerID, &photo.EventName, &photo.Price,
		pq.Array(&photo.BibNumbers), &photo.OriginalPath, &photo.WatermarkPath,
		&photo.PreviewURL, &photo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return &photo, nil
}

// ListPhotos filters by bib number and event name when provided. Empty
// filters return the newest photos first.
func (d *DatabaseClient) ListPhotos(bibNumber, eventName string) ([]models.Photo, error) {
	rows, err := d.db.Query(`
		SELECT id, photographer_id, event_name, price, bib_numbers, original_path, watermark_path, preview_url, created_at
		FROM photos
		WHERE ($1 = '' OR $1 = ANY(bib_numbers))
		  AND ($2 = '' OR event_name = $2)
		ORDER BY created_at DESC
		LIMIT 200
	`, bibNumber, eventName)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID, &photo.PhotographerID, &photo.EventName, &photo.Price,
			pq.Array(&photo.BibNumbers), &photo.OriginalPath, &photo.WatermarkPath,
			&photo.PreviewURL, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

// InsertPurchases writes all purchase rows for one completed session in a
// single transaction. The unique index on (photo_id, stripe_payment_intent)
// makes redelivered webhook events a no-op instead of a duplicate.
func (d *DatabaseClient) InsertPurchases(purchases []models.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, p := range purchases {
		_, err := tx.Exec(`
			INSERT INTO purchases (photo_id, buyer_id, amount, stripe_payment_intent)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (photo_id, stripe_payment_intent) DO NOTHING
		`, p.PhotoID, p.BuyerID, p.Amount, p.StripePaymentIntent)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert purchase: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchases: %w", err)
	}

	return nil
}

func (d *DatabaseClient) HasPurchasesForPaymentIntent(paymentIntent string) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM purchases WHERE stripe_payment_intent = $1
	`, paymentIntent).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check purchases: %w", err)
	}
	return count > 0, nil
}

func (d *DatabaseClient) ListPurchasesByBuyer(buyerID uuid.UUID) ([]models.Purchase, error) {
	rows, err := d.db.Query(`
		SELECT id, photo_id, buyer_id, amount, stripe_payment_intent, created_at
		FROM purchases
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		err := rows.Scan(&p.ID, &p.PhotoID, &p.BuyerID, &p.Amount, &p.StripePaymentIntent, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

func (d *DatabaseClient) ListPriceTiers() ([]models.PriceTier, error) {
	rows, err := d.db.Query(`
		SELECT id, name, price, description
		FROM price_tiers
		ORDER BY price ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list price tiers: %w", err)
	}
	defer rows.Close()

	var tiers []models.PriceTier
	for rows.Next() {
		var tier models.PriceTier
		err := rows.Scan(&tier.ID, &tier.Name, &tier.Price, &tier.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price tier: %w", err)
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
