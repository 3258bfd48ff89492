package storage

import "database/sql"

const cardColumns = `id, name, arcana, suit, number, keywords, meaning_upright, meaning_reversed, symbolism, element, astrology, image_url`

// ListCards returns every card row ordered by id.
func (s *Store) ListCards() ([]CardRow, error) {
	rows, err := s.db.Query(`SELECT ` + cardColumns + ` FROM tarot_cards ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CardRow
	for rows.Next() {
		var c CardRow
		if err := scanCard(rows.Scan, &c); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// GetCard returns a single card row by id.
func (s *Store) GetCard(id string) (CardRow, error) {
	row := s.db.QueryRow(`SELECT `+cardColumns+` FROM tarot_cards WHERE id = ?`, id)

	var c CardRow
	err := scanCard(row.Scan, &c)
	if err == sql.ErrNoRows {
		return CardRow{}, ErrNotFound
	}
	if err != nil {
		return CardRow{}, err
	}
	return c, nil
}

// CountCards returns the number of cards in the catalog table.
func (s *Store) CountCards() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tarot_cards`).Scan(&n)
	return n, err
}

func scanCard(scan func(...any) error, c *CardRow) error {
	return scan(
		&c.ID, &c.Name, &c.Arcana, &c.Suit, &c.Number,
		&c.Keywords, &c.MeaningUpright, &c.MeaningReversed,
		&c.Symbolism, &c.Element, &c.Astrology, &c.ImageURL,
	)
}
