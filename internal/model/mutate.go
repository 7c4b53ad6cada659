package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Mutations replace the touched sub-tree and recompute the derived counters
// on that path. The receiver document is never modified; untouched branches
// are shared between old and new documents.

// AddTheme appends a theme. A blank id is replaced with a generated one.
func (d Document) AddTheme(t Theme) Document {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.ClusterCount = len(t.Clusters)
	themes := make([]Theme, 0, len(d.Themes)+1)
	themes = append(themes, d.Themes...)
	themes = append(themes, t)
	return Document{Themes: themes}
}

// UpdateTheme replaces the theme with t.ID. The theme's clusters are kept
// unless t carries its own.
func (d Document) UpdateTheme(t Theme) (Document, error) {
	idx := d.themeIndex(t.ID)
	if idx < 0 {
		return Document{}, fmt.Errorf("theme not found: %s", t.ID)
	}
	if t.Clusters == nil {
		t.Clusters = d.Themes[idx].Clusters
	}
	t.ClusterCount = len(t.Clusters)
	themes := copyThemes(d.Themes)
	themes[idx] = t
	return Document{Themes: themes}, nil
}

// DeleteTheme removes the theme with the given id.
func (d Document) DeleteTheme(id string) (Document, error) {
	idx := d.themeIndex(id)
	if idx < 0 {
		return Document{}, fmt.Errorf("theme not found: %s", id)
	}
	themes := make([]Theme, 0, len(d.Themes)-1)
	themes = append(themes, d.Themes[:idx]...)
	themes = append(themes, d.Themes[idx+1:]...)
	return Document{Themes: themes}, nil
}

// AddCluster appends a cluster to the theme with themeID.
func (d Document) AddCluster(themeID string, c Cluster) (Document, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.EntityCount = len(c.Entities)
	return d.replaceTheme(themeID, func(t Theme) (Theme, error) {
		clusters := make([]Cluster, 0, len(t.Clusters)+1)
		clusters = append(clusters, t.Clusters...)
		clusters = append(clusters, c)
		t.Clusters = clusters
		return t, nil
	})
}

// UpdateCluster replaces the cluster with c.ID inside the theme. The
// cluster's entities are kept unless c carries its own.
func (d Document) UpdateCluster(themeID string, c Cluster) (Document, error) {
	return d.replaceTheme(themeID, func(t Theme) (Theme, error) {
		idx := clusterIndex(t.Clusters, c.ID)
		if idx < 0 {
			return Theme{}, fmt.Errorf("cluster not found in theme %s: %s", themeID, c.ID)
		}
		if c.Entities == nil {
			c.Entities = t.Clusters[idx].Entities
		}
		c.EntityCount = len(c.Entities)
		clusters := copyClusters(t.Clusters)
		clusters[idx] = c
		t.Clusters = clusters
		return t, nil
	})
}

// DeleteCluster removes the cluster with clusterID from the theme.
func (d Document) DeleteCluster(themeID, clusterID string) (Document, error) {
	return d.replaceTheme(themeID, func(t Theme) (Theme, error) {
		idx := clusterIndex(t.Clusters, clusterID)
		if idx < 0 {
			return Theme{}, fmt.Errorf("cluster not found in theme %s: %s", themeID, clusterID)
		}
		clusters := make([]Cluster, 0, len(t.Clusters)-1)
		clusters = append(clusters, t.Clusters[:idx]...)
		clusters = append(clusters, t.Clusters[idx+1:]...)
		t.Clusters = clusters
		return t, nil
	})
}

// AddEntity appends an entity to the cluster inside the theme.
func (d Document) AddEntity(themeID, clusterID string, e Entity) (Document, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return d.replaceCluster(themeID, clusterID, func(c Cluster) (Cluster, error) {
		entities := make([]Entity, 0, len(c.Entities)+1)
		entities = append(entities, c.Entities...)
		entities = append(entities, e)
		c.Entities = entities
		return c, nil
	})
}

// UpdateEntity replaces the entity with e.ID inside the cluster.
func (d Document) UpdateEntity(themeID, clusterID string, e Entity) (Document, error) {
	return d.replaceCluster(themeID, clusterID, func(c Cluster) (Cluster, error) {
		idx := entityIndex(c.Entities, e.ID)
		if idx < 0 {
			return Cluster{}, fmt.Errorf("entity not found in cluster %s: %s", clusterID, e.ID)
		}
		entities := copyEntities(c.Entities)
		entities[idx] = e
		c.Entities = entities
		return c, nil
	})
}

// DeleteEntity removes the entity with entityID from the cluster.
func (d Document) DeleteEntity(themeID, clusterID, entityID string) (Document, error) {
	return d.replaceCluster(themeID, clusterID, func(c Cluster) (Cluster, error) {
		idx := entityIndex(c.Entities, entityID)
		if idx < 0 {
			return Cluster{}, fmt.Errorf("entity not found in cluster %s: %s", clusterID, entityID)
		}
		entities := make([]Entity, 0, len(c.Entities)-1)
		entities = append(entities, c.Entities[:idx]...)
		entities = append(entities, c.Entities[idx+1:]...)
		c.Entities = entities
		return c, nil
	})
}

func (d Document) themeIndex(id string) int {
	for i := range d.Themes {
		if d.Themes[i].ID == id {
			return i
		}
	}
	return -1
}

func clusterIndex(clusters []Cluster, id string) int {
	for i := range clusters {
		if clusters[i].ID == id {
			return i
		}
	}
	return -1
}

func entityIndex(entities []Entity, id string) int {
	for i := range entities {
		if entities[i].ID == id {
			return i
		}
	}
	return -1
}

func (d Document) replaceTheme(themeID string, fn func(Theme) (Theme, error)) (Document, error) {
	idx := d.themeIndex(themeID)
	if idx < 0 {
		return Document{}, fmt.Errorf("theme not found: %s", themeID)
	}
	updated, err := fn(d.Themes[idx])
	if err != nil {
		return Document{}, err
	}
	updated.ClusterCount = len(updated.Clusters)
	themes := copyThemes(d.Themes)
	themes[idx] = updated
	return Document{Themes: themes}, nil
}

func (d Document) replaceCluster(themeID, clusterID string, fn func(Cluster) (Cluster, error)) (Document, error) {
	return d.replaceTheme(themeID, func(t Theme) (Theme, error) {
		idx := clusterIndex(t.Clusters, clusterID)
		if idx < 0 {
			return Theme{}, fmt.Errorf("cluster not found in theme %s: %s", themeID, clusterID)
		}
		updated, err := fn(t.Clusters[idx])
		if err != nil {
			return Theme{}, err
		}
		updated.EntityCount = len(updated.Entities)
		clusters := copyClusters(t.Clusters)
		clusters[idx] = updated
		t.Clusters = clusters
		return t, nil
	})
}

func copyThemes(themes []Theme) []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func copyClusters(clusters []Cluster) []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)
	return out
}

func copyEntities(entities []Entity) []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	return out
}
