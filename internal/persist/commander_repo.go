package persist

import (
	"context"

	"github.com/Micenas/R1EMU/internal/barrack"
)

// CommanderRepo reads and mutates the commanders table. The pcId handle is
// session-scoped and never persisted; socialInfoId is assigned at creation
// and stored with the record.
type CommanderRepo struct {
	db *DB
}

func NewCommanderRepo(db *DB) *CommanderRepo {
	return &CommanderRepo{db: db}
}

// CommanderIDs returns the persistent ids of every commander owned by the
// account, in creation order.
func (r *CommanderRepo) CommanderIDs(ctx context.Context, accountID uint64) ([]uint64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT commander_id FROM commanders
		 WHERE account_id = $1 ORDER BY commander_id`, int64(accountID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, uint64(id))
	}
	return ids, rows.Err()
}

// CommandersByIDs fetches full records for the given roster, in the same
// order CommanderIDs returned them.
func (r *CommanderRepo) CommandersByIDs(ctx context.Context, ids []uint64) ([]barrack.Commander, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT commander_id, account_id, name, family_name,
		        job_id, class_id, gender, hair_id,
		        social_info_id, map_id, pos_x, pos_y, pos_z
		 FROM commanders
		 WHERE commander_id = ANY($1) ORDER BY commander_id`, raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []barrack.Commander
	for rows.Next() {
		var (
			c            barrack.Commander
			commanderID  int64
			accountID    int64
			jobID        int32
			classID      int64
			gender       int16
			hairID       int16
			socialInfoID int64
		)
		if err := rows.Scan(
			&commanderID, &accountID, &c.Appearance.Name, &c.Appearance.FamilyName,
			&jobID, &classID, &gender, &hairID,
			&socialInfoID, &c.MapID, &c.Position.X, &c.Position.Y, &c.Position.Z,
		); err != nil {
			return nil, err
		}
		c.CommanderID = uint64(commanderID)
		c.Appearance.AccountID = uint64(accountID)
		c.Appearance.JobID = barrack.JobID(jobID)
		c.Appearance.ClassID = barrack.ClassID(classID)
		c.Appearance.Gender = barrack.Gender(gender)
		c.Appearance.HairID = uint8(hairID)
		c.SocialInfoID = uint64(socialInfoID)
		result = append(result, c)
	}
	return result, rows.Err()
}

// Insert persists a new commander and returns the database-assigned id.
func (r *CommanderRepo) Insert(ctx context.Context, accountID uint64, c *barrack.Commander) (uint64, error) {
	var commanderID int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO commanders (
			account_id, name, family_name,
			job_id, class_id, gender, hair_id,
			social_info_id, map_id, pos_x, pos_y, pos_z
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING commander_id`,
		int64(accountID), c.Appearance.Name, c.Appearance.FamilyName,
		int32(c.Appearance.JobID), int64(c.Appearance.ClassID),
		int16(c.Appearance.Gender), int16(c.Appearance.HairID),
		int64(c.SocialInfoID), c.MapID, c.Position.X, c.Position.Y, c.Position.Z,
	).Scan(&commanderID)
	if err != nil {
		return 0, err
	}
	return uint64(commanderID), nil
}

// Delete removes a commander by its persistent id.
func (r *CommanderRepo) Delete(ctx context.Context, commanderID uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM commanders WHERE commander_id = $1`, int64(commanderID),
	)
	return err
}
