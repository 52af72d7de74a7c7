package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Binding binds request params into v and validates the struct tags.
// GET requests decode the query string, everything else the JSON body.
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := r.ParseForm(); err != nil {
			return err
		}
		if err := decoder.Decode(v, r.Form); err != nil {
			return err
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}
