package blocks

import (
	"errors"

	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

/*
	Block tree manager
	------------------
	- A page's blocks are replaced wholesale: delete everything for the
	  page, then recreate the submitted forest depth-first so parents exist
	  before their children.
	- Reads load the page's rows flat and assemble the tree in memory, so
	  nesting depth is unbounded.
	- Single nodes can be patched or removed without touching siblings.
*/

// ReplacePage swaps the whole forest of page in one transaction. Sort is
// assigned from list position at every level. Returns the created forest
// with freshly assigned ids.
func ReplacePage(db *gorm.DB, page string, inputs []Input) ([]Block, error) {
	created := make([]Block, 0, len(inputs))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page = ?", page).Delete(&Block{}).Error; err != nil {
			return err
		}
		for i, in := range inputs {
			b, err := createRecursive(tx, page, in, i, nil)
			if err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func createRecursive(tx *gorm.DB, page string, in Input, sort int, parentID *string) (Block, error) {
	if in.Type == "" {
		return Block{}, apierr.Validation("block type must not be empty")
	}

	b := Block{
		ID:       in.ID,
		Page:     page,
		Type:     in.Type,
		Sort:     sort,
		Data:     in.Data,
		ParentID: parentID,
	}
	if err := tx.Create(&b).Error; err != nil {
		return Block{}, err
	}

	b.Children = make([]Block, 0, len(in.Children))
	for i, childIn := range in.Children {
		child, err := createRecursive(tx, page, childIn, i, &b.ID)
		if err != nil {
			return Block{}, err
		}
		b.Children = append(b.Children, child)
	}
	return b, nil
}

// GetByPage returns the root blocks of page with children populated
// recursively, ordered by sort at every level. An unknown page yields an
// empty forest, not an error.
func GetByPage(db *gorm.DB, page string) ([]Block, error) {
	all, err := loadPage(db, page)
	if err != nil {
		return nil, err
	}

	byParent := childIndex(all)
	forest := make([]Block, 0)
	for _, b := range all {
		if b.ParentID == nil {
			forest = append(forest, attachChildren(b, byParent))
		}
	}
	return forest, nil
}

// GetByID returns one block with its full descendant subtree.
func GetByID(db *gorm.DB, id string) (Block, error) {
	var b Block
	if err := db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Block{}, apierr.NotFound("block with id %q not found", id)
		}
		return Block{}, err
	}

	all, err := loadPage(db, b.Page)
	if err != nil {
		return Block{}, err
	}
	return attachChildren(b, childIndex(all)), nil
}

// UpdateNode applies patch to exactly one node. Reparenting validates the
// target parent and rejects cycles; a page change cascades to all
// descendants so a moved subtree stays reachable under one page value.
func UpdateNode(db *gorm.DB, id string, patch Patch) (Block, error) {
	var updated Block

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing Block
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("block with id %q not found", id)
			}
			return err
		}

		updates := map[string]interface{}{}

		if patch.Type != nil {
			if *patch.Type == "" {
				return apierr.Validation("block type must not be empty")
			}
			updates["type"] = *patch.Type
		}
		if patch.Sort != nil {
			updates["sort"] = *patch.Sort
		}
		if patch.DataSet {
			if len(patch.Data) > 0 {
				updates["data"] = patch.Data
			} else {
				updates["data"] = nil
			}
		}
		if patch.ParentIDSet {
			if patch.ParentID != nil {
				if *patch.ParentID == id {
					return apierr.Validation("block cannot be its own parent")
				}
				var parent Block
				if err := tx.First(&parent, "id = ?", *patch.ParentID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apierr.NotFound("parent block with id %q not found", *patch.ParentID)
					}
					return err
				}
				descendants, err := descendantIDs(tx, id)
				if err != nil {
					return err
				}
				for _, d := range descendants {
					if d == *patch.ParentID {
						return apierr.Validation("cannot set a descendant block as parent")
					}
				}
			}
			updates["parent_id"] = patch.ParentID
		}
		if patch.Page != nil {
			updates["page"] = *patch.Page
		}

		if len(updates) > 0 {
			if err := tx.Model(&Block{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Keep the whole subtree on one page value.
		if patch.Page != nil && *patch.Page != existing.Page {
			descendants, err := descendantIDs(tx, id)
			if err != nil {
				return err
			}
			if len(descendants) > 0 {
				if err := tx.Model(&Block{}).
					Where("id IN ?", descendants).
					Update("page", *patch.Page).Error; err != nil {
					return err
				}
			}
		}

		b, err := GetByID(tx, id)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return Block{}, err
	}
	return updated, nil
}

// RemoveNode deletes a block and all of its descendants, returning the
// subtree as it existed immediately before deletion.
func RemoveNode(db *gorm.DB, id string) (Block, error) {
	var snapshot Block

	err := db.Transaction(func(tx *gorm.DB) error {
		b, err := GetByID(tx, id)
		if err != nil {
			return err
		}
		snapshot = b

		ids, err := descendantIDs(tx, id)
		if err != nil {
			return err
		}
		ids = append(ids, id)

		return tx.Delete(&Block{}, "id IN ?", ids).Error
	})
	if err != nil {
		return Block{}, err
	}
	return snapshot, nil
}

func loadPage(db *gorm.DB, page string) ([]Block, error) {
	var all []Block
	if err := db.
		Where("page = ?", page).
		Order("sort ASC, created_at ASC").
		Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

func childIndex(all []Block) map[string][]Block {
	byParent := make(map[string][]Block, len(all))
	for _, b := range all {
		if b.ParentID != nil {
			byParent[*b.ParentID] = append(byParent[*b.ParentID], b)
		}
	}
	return byParent
}

func attachChildren(b Block, byParent map[string][]Block) Block {
	kids := byParent[b.ID]
	b.Children = make([]Block, 0, len(kids))
	for _, k := range kids {
		b.Children = append(b.Children, attachChildren(k, byParent))
	}
	return b
}

// descendantIDs walks the parent links breadth-first and returns every id
// below root, excluding root itself.
func descendantIDs(tx *gorm.DB, root string) ([]string, error) {
	frontier := []string{root}
	var out []string
	for len(frontier) > 0 {
		var next []string
		if err := tx.Model(&Block{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		out = append(out, next...)
		frontier = next
	}
	return out, nil
}
