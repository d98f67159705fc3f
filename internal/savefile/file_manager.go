// Package savefile persists Save structures as zstd-compressed JSON files,
// the transport form of a built snapshot.
package savefile

import (
	"os"

	json "github.com/goccy/go-json"

	"twsave/internal/models"
	"twsave/internal/providers"
	"twsave/internal/savefile/interfaces"
)

type FileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

// Save writes the snapshot atomically: temp file, sync, rename.
func (f *FileManager) Save(save *models.Save, fileName string) error {
	jsonData, err := json.Marshal(save)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	f.logger.Infof(providers.TypeSave, "Persisted save (version %s) to file %s", save.Info.Version, fileName)
	return os.Rename(tmpFile, fileName)
}

// Load reads a snapshot back. A missing file is not an error; it returns a
// nil save, meaning "nothing persisted yet".
func (f *FileManager) Load(fileName string) (*models.Save, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var save models.Save
	if err := json.Unmarshal(decompressedData, &save); err != nil {
		return nil, err
	}
	return &save, nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
