package ports

import "goglm/domain/dataset"

// DatasetReader loads a dataset from some backing source (xlsx, csv, ...).
type DatasetReader interface {
	Read() (*dataset.Table, error)
}
