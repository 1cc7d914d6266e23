package aggregate

// TestAdd exposes add for external test packages.
func (c *Cache) TestAdd(entry FileEntry) bool {
	return c.add(entry)
}

// TestRemove exposes remove for external test packages.
func (c *Cache) TestRemove(path string) {
	c.remove(path)
}
