// Package albumtree builds and renders the album/folder hierarchy of a
// Photos library.
package albumtree

import (
	"fmt"
	"sort"

	"github.com/facette/natsort"
	"github.com/fatih/color"
	"github.com/xlab/treeprint"

	"github.com/lgraf/photos-export/database"
)

// noParentKey groups the albums that have no parent reference, i.e. the
// synthetic root of the library.
const noParentKey int64 = -1

// Node is one album or folder in the forest.
type Node struct {
	Album    database.Album
	Children []*Node
}

// BuildForest assembles the album forest from the flat parent-pointer list.
// Siblings are ordered by start date ascending with undated albums first;
// equal dates fall back to a natural sort of the names. A visited guard keeps
// a malformed parent chain from looping forever.
func BuildForest(albums []database.Album) []*Node {
	byParent := make(map[int64][]database.Album)
	for _, album := range albums {
		key := noParentKey
		if album.ParentID != nil {
			key = *album.ParentID
		}
		byParent[key] = append(byParent[key], album)
	}

	visited := make(map[int64]bool)

	var attach func(parentKey int64) []*Node
	attach = func(parentKey int64) []*Node {
		children := byParent[parentKey]
		sortSiblings(children)

		nodes := make([]*Node, 0, len(children))
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			nodes = append(nodes, &Node{
				Album:    child,
				Children: attach(child.ID),
			})
		}
		return nodes
	}

	return attach(noParentKey)
}

func sortSiblings(albums []database.Album) {
	sort.SliceStable(albums, func(i, j int) bool {
		di, dj := albums[i].StartDate, albums[j].StartDate
		switch {
		case di == nil && dj == nil:
			return natsort.Compare(albums[i].Name, albums[j].Name)
		case di == nil:
			return true
		case dj == nil:
			return false
		default:
			return di.Before(*dj)
		}
	})
}

// Render draws the forest as an ASCII tree.
func Render(forest []*Node) string {
	tree := treeprint.New()
	for _, root := range forest {
		addNode(tree, root)
	}
	return tree.String()
}

func addNode(branch treeprint.Tree, node *Node) {
	child := branch.AddBranch(Label(node.Album))
	for _, c := range node.Children {
		addNode(child, c)
	}
}

// Label formats an album for display. The root gets a fixed placeholder,
// folders show their name, and albums show id, start date, name and asset
// count.
func Label(album database.Album) string {
	switch album.Kind {
	case database.KindRoot:
		return color.New(color.BgMagenta, color.FgWhite).Sprint("<root album>")
	case database.KindUserFolder:
		return color.New(color.BgBlue, color.FgWhite).Sprint(album.Name)
	default:
		label := color.YellowString("(%d) ", album.ID)
		if album.StartDate != nil {
			label += color.HiBlackString("%s: ", album.StartDate.Format("2006-01-02 15:04:05"))
		}
		label += color.WhiteString("%s", album.Name)
		label += color.CyanString(" (%d assets)", album.AssetCount)
		return label
	}
}

// Summary formats the closing asset-count lines printed under the tree.
func Summary(counts database.AssetCount) string {
	return fmt.Sprintf("Total number of assets: %d\nNumber of assets not in an album: %d",
		counts.Total, counts.Total-counts.Album)
}
