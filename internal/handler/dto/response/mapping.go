package response

import (
	"time"

	"rental-booking/internal/handler/dto/request"

	"github.com/jinzhu/copier"
)

// dates are rendered as calendar days; other timestamps stay RFC 3339
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).Format(request.DateLayout), nil
			},
		},
	},
}

func copyInto[T any](src any) (*T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copyOption); err != nil {
		return nil, err
	}
	return &dst, nil
}
