package model

const (
	defaultPageSize uint = 20
	maxPageSize     uint = 100
)

// PageRequest is an offset/limit paging request. Page numbering is 0-based.
type PageRequest struct {
	Page uint
	Size uint
}

func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: defaultPageSize}
}

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Size == 0 {
		p.Size = defaultPageSize
	}

	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}

	return p
}

func (p PageRequest) Offset() uint {
	return p.Page * p.Size
}

// DevicePage is one page of stored entities plus the unfiltered total.
type DevicePage struct {
	Devices       []*Device
	TotalElements uint
	Request       PageRequest
}

// DataPage is one page of transfer objects, ready for serialization.
type DataPage struct {
	Content       []DeviceData
	TotalElements uint
	TotalPages    uint
	Page          uint
	Size          uint
}

// NewDataPage maps a DevicePage into transfer form.
func NewDataPage(page *DevicePage) DataPage {
	content := make([]DeviceData, 0, len(page.Devices))
	for _, device := range page.Devices {
		content = append(content, DeviceDataFromDevice(device))
	}

	totalPages := page.TotalElements / page.Request.Size
	if page.TotalElements%page.Request.Size != 0 {
		totalPages++
	}

	return DataPage{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    totalPages,
		Page:          page.Request.Page,
		Size:          page.Request.Size,
	}
}
