package seed

// Entry represents a single bookmark in the seed file
type Entry struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// File is the root structure of the seed yaml.
// The YAML structure is:
//
//	bookmarks:
//	  - url: https://docs.nestjs.com/
//	    description: NestJS Documentation
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
