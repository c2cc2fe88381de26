package jsonstore

func (s *Store) GetSetting(key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.read(func(doc *document) error {
		value, ok = doc.Settings[key]
		return nil
	})
	return value, ok, err
}

func (s *Store) SetSetting(key, value string) error {
	return s.mutate(func(doc *document) error {
		doc.Settings[key] = value
		return nil
	})
}

func (s *Store) RemoveSetting(key string) error {
	return s.mutate(func(doc *document) error {
		delete(doc.Settings, key)
		return nil
	})
}

func (s *Store) GetAllSettings() (map[string]string, error) {
	settings := make(map[string]string)
	err := s.read(func(doc *document) error {
		for k, v := range doc.Settings {
			settings[k] = v
		}
		return nil
	})
	return settings, err
}
